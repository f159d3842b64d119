package automation

import (
	"fmt"

	"github.com/rowanveitch/ember-core/internal/event"
)

// Logger is the minimal logging surface the engine needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Engine evaluates automation rules against events. It subscribes to the
// bus like any other consumer, so rule actions have fully run by the time
// the triggering Publish returns.
type Engine struct {
	rules  []*Rule
	byID   map[string]*Rule
	logger Logger
}

// NewEngine creates an empty engine. logger may be nil.
func NewEngine(logger Logger) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Engine{
		byID:   make(map[string]*Rule),
		logger: logger,
	}
}

// Name implements event.Subscriber.
func (e *Engine) Name() string { return "automation-engine" }

// AddRule registers a rule. New rules are enabled.
func (e *Engine) AddRule(r *Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, exists := e.byID[r.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID)
	}
	r.Enabled = true
	e.rules = append(e.rules, r)
	e.byID[r.ID] = r
	e.logger.Info("rule added", "rule_id", r.ID, "name", r.Name)
	return nil
}

// RemoveRule unregisters a rule by ID.
//
// The kept rules go into a fresh slice rather than compacting in place: a
// rule action may remove its own rule (one-shot rules), and an in-flight
// Handle must keep walking the list it started with so every other rule
// is still evaluated exactly once, in addition order.
func (e *Engine) RemoveRule(id string) error {
	if _, exists := e.byID[id]; !exists {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	delete(e.byID, id)
	kept := make([]*Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if r.ID == id {
			continue
		}
		kept = append(kept, r)
	}
	e.rules = kept
	e.logger.Info("rule removed", "rule_id", id)
	return nil
}

// SetEnabled toggles a rule without removing it.
func (e *Engine) SetEnabled(id string, enabled bool) error {
	r, exists := e.byID[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	r.Enabled = enabled
	return nil
}

// Rules returns the registered rules in addition order.
func (e *Engine) Rules() []*Rule {
	out := make([]*Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Handle implements event.Subscriber: every enabled rule whose condition
// matches runs its action. A failing action is logged and later rules
// still run. Handle itself never returns an error; rule failures are an
// engine concern, not a bus concern.
func (e *Engine) Handle(ev event.Event) error {
	for _, r := range e.rules {
		if !r.Enabled || !r.Condition(ev) {
			continue
		}
		if err := r.Action(ev); err != nil {
			e.logger.Warn("rule action failed",
				"rule_id", r.ID,
				"name", r.Name,
				"event_type", ev.Type,
				"error", err)
			continue
		}
		e.logger.Info("rule fired", "rule_id", r.ID, "event_type", ev.Type)
	}
	return nil
}
