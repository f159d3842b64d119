package automation

import (
	"fmt"

	"github.com/rowanveitch/ember-core/internal/event"
)

// Condition decides whether a rule applies to an event.
type Condition func(e event.Event) bool

// Action is the effect a rule runs when its condition matches.
type Action func(e event.Event) error

// Rule binds a condition to an action. Rules are evaluated in the order
// they were added, every time an event reaches the engine.
type Rule struct {
	ID        string
	Name      string
	Condition Condition
	Action    Action

	// Enabled rules run; disabled rules are kept but skipped.
	Enabled bool
}

// Validate checks that the rule is runnable.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: ID is required", ErrInvalidRule)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRule)
	}
	if r.Condition == nil {
		return fmt.Errorf("%w: condition is required", ErrInvalidRule)
	}
	if r.Action == nil {
		return fmt.Errorf("%w: action is required", ErrInvalidRule)
	}
	return nil
}
