package device

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// scheduledChange is a state change queued to run at a point in time.
type scheduledChange struct {
	id      string
	at      time.Time
	changes State
}

// Timer adds delayed state changes to a device. Schedules are held in
// memory and fire only when FireDue is called, keeping the whole pipeline
// synchronous: the caller decides when time advances.
type Timer struct {
	Wrapper
	now     func() time.Time
	pending []scheduledChange
	onError func(id string, err error)
}

// TimerOption configures a Timer.
type TimerOption func(*Timer)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) TimerOption {
	return func(t *Timer) { t.now = now }
}

// WithScheduleErrorHandler is invoked when a due schedule's Apply fails.
func WithScheduleErrorHandler(fn func(id string, err error)) TimerOption {
	return func(t *Timer) { t.onError = fn }
}

// NewTimer wraps d with scheduling support.
func NewTimer(d Device, opts ...TimerOption) *Timer {
	t := &Timer{
		Wrapper: Wrap(d),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Schedule queues changes to be applied at the given time. The time must
// be in the future relative to the timer's clock.
func (t *Timer) Schedule(at time.Time, changes State) (string, error) {
	if !at.After(t.now()) {
		return "", fmt.Errorf("%w: %s", ErrScheduleInPast, at.Format(time.RFC3339))
	}
	sc := scheduledChange{
		id:      uuid.New().String(),
		at:      at,
		changes: changes.DeepCopy(),
	}
	t.pending = append(t.pending, sc)
	sort.SliceStable(t.pending, func(i, j int) bool {
		return t.pending[i].at.Before(t.pending[j].at)
	})
	return sc.id, nil
}

// NextScheduled returns the earliest pending fire time, or false when
// nothing is queued.
func (t *Timer) NextScheduled() (time.Time, bool) {
	if len(t.pending) == 0 {
		return time.Time{}, false
	}
	return t.pending[0].at, true
}

// Cancel removes a single schedule by ID.
func (t *Timer) Cancel(id string) bool {
	for i, sc := range t.pending {
		if sc.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending schedule and reports how many were removed.
func (t *Timer) CancelAll() int {
	n := len(t.pending)
	t.pending = nil
	return n
}

// FireDue applies every schedule due at or before now, in time order, and
// returns the number fired. A failing Apply does not stop later schedules.
func (t *Timer) FireDue(now time.Time) int {
	fired := 0
	for len(t.pending) > 0 && !t.pending[0].at.After(now) {
		sc := t.pending[0]
		t.pending = t.pending[1:]
		if err := t.Apply(sc.changes); err != nil && t.onError != nil {
			t.onError(sc.id, err)
		}
		fired++
	}
	return fired
}

// State reports the wrapped device's state plus scheduling status under
// "has_schedules" and, when present, "next_scheduled".
func (t *Timer) State() State {
	state := t.Wrapper.State()
	state["has_schedules"] = len(t.pending) > 0
	if next, ok := t.NextScheduled(); ok {
		state["next_scheduled"] = next.Format(time.RFC3339)
	}
	return state
}
