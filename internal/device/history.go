package device

import (
	"reflect"
	"time"
)

// ChangeEntry records one state-changing command: which keys changed and
// the values they moved between.
type ChangeEntry struct {
	Time   time.Time
	Before State
	After  State
}

// History keeps a bounded in-memory log of state changes on a device.
// When the log is full the oldest entry is dropped.
type History struct {
	Wrapper
	capacity int
	entries  []ChangeEntry
	now      func() time.Time
}

// NewHistory wraps d, retaining up to capacity change entries. A capacity
// of zero or less disables retention.
func NewHistory(d Device, capacity int) *History {
	return &History{
		Wrapper:  Wrap(d),
		capacity: capacity,
		now:      time.Now,
	}
}

// Apply delegates the change and records it when state actually moved.
// Only the keys that changed are stored, not full snapshots.
func (h *History) Apply(changes State) error {
	before := h.Wrapper.State()
	if err := h.Wrapper.Apply(changes); err != nil {
		return err
	}
	if h.capacity <= 0 {
		return nil
	}
	after := h.Wrapper.State()
	diffBefore, diffAfter := diffStates(before, after)
	if len(diffAfter) == 0 {
		return nil
	}
	h.entries = append(h.entries, ChangeEntry{
		Time:   h.now(),
		Before: diffBefore,
		After:  diffAfter,
	})
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
	return nil
}

// Entries returns the recorded changes, oldest first.
func (h *History) Entries() []ChangeEntry {
	out := make([]ChangeEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear drops all recorded changes.
func (h *History) Clear() { h.entries = nil }

// diffStates returns the keys whose values differ, as before/after maps.
func diffStates(before, after State) (State, State) {
	oldVals := State{}
	newVals := State{}
	for key, newVal := range after {
		oldVal, existed := before[key]
		if !existed || !reflect.DeepEqual(oldVal, newVal) {
			if existed {
				oldVals[key] = oldVal
			}
			newVals[key] = newVal
		}
	}
	return oldVals, newVals
}
