package device

import "fmt"

// Security gates state changes behind an armed flag. While armed, changes
// touching restricted keys are rejected with ErrNotAuthorized; everything
// else passes through untouched.
type Security struct {
	Wrapper
	armed      bool
	restricted map[string]struct{}
}

// DefaultRestrictedKeys are the state keys gated when no explicit set is
// given: powering devices and unlocking doors.
func DefaultRestrictedKeys() []string {
	return []string{"power", "locked"}
}

// NewSecurity wraps d with arm/disarm gating. When keys is empty the
// default restricted set is used.
func NewSecurity(d Device, keys ...string) *Security {
	if len(keys) == 0 {
		keys = DefaultRestrictedKeys()
	}
	restricted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		restricted[k] = struct{}{}
	}
	return &Security{
		Wrapper:    Wrap(d),
		restricted: restricted,
	}
}

// Arm enables gating.
func (s *Security) Arm() { s.armed = true }

// Disarm disables gating.
func (s *Security) Disarm() { s.armed = false }

// Armed reports whether gating is active.
func (s *Security) Armed() bool { return s.armed }

// Apply rejects the whole change set if any restricted key is present
// while armed. Partial application would leave the device in a state the
// caller never asked for.
func (s *Security) Apply(changes State) error {
	if s.armed {
		for key := range changes {
			if _, gated := s.restricted[key]; gated {
				return fmt.Errorf("%w: %q is restricted while armed", ErrNotAuthorized, key)
			}
		}
	}
	return s.Wrapper.Apply(changes)
}

// State reports the wrapped device's state plus the armed flag.
func (s *Security) State() State {
	state := s.Wrapper.State()
	state["armed"] = s.armed
	return state
}
