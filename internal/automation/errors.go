package automation

import "errors"

// Domain errors for the automation package.
var (
	// ErrInvalidRule is returned when a rule is missing required fields.
	ErrInvalidRule = errors.New("automation: invalid rule")

	// ErrRuleNotFound is returned when a rule ID does not exist.
	ErrRuleNotFound = errors.New("automation: rule not found")

	// ErrDuplicateRule is returned when adding a rule with an ID already registered.
	ErrDuplicateRule = errors.New("automation: rule already exists")
)
