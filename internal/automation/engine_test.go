package automation

import (
	"errors"
	"testing"

	"github.com/rowanveitch/ember-core/internal/event"
)

func motionEvent(deviceID string) event.Event {
	return event.New(event.TypeMotionDetected, "perimeter", event.Payload{
		"device_id": deviceID,
	})
}

func countingRule(id string, cond Condition, fired *int) *Rule {
	return &Rule{
		ID:        id,
		Name:      "rule " + id,
		Condition: cond,
		Action: func(event.Event) error {
			*fired++
			return nil
		},
	}
}

func TestEngine_AddRule_Validation(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name string
		rule *Rule
	}{
		{"missing id", &Rule{Name: "x", Condition: OnType(event.TypeScheduled), Action: func(event.Event) error { return nil }}},
		{"missing name", &Rule{ID: "r1", Condition: OnType(event.TypeScheduled), Action: func(event.Event) error { return nil }}},
		{"missing condition", &Rule{ID: "r1", Name: "x", Action: func(event.Event) error { return nil }}},
		{"missing action", &Rule{ID: "r1", Name: "x", Condition: OnType(event.TypeScheduled)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := engine.AddRule(tt.rule); !errors.Is(err, ErrInvalidRule) {
				t.Errorf("expected ErrInvalidRule, got %v", err)
			}
		})
	}
}

func TestEngine_AddRule_Duplicate(t *testing.T) {
	engine := NewEngine(nil)
	var n int
	if err := engine.AddRule(countingRule("r1", OnType(event.TypeMotionDetected), &n)); err != nil {
		t.Fatalf("AddRule() error = %v", err)
	}
	if err := engine.AddRule(countingRule("r1", OnType(event.TypeMotionDetected), &n)); !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("expected ErrDuplicateRule, got %v", err)
	}
}

func TestEngine_Handle_MatchingRulesFire(t *testing.T) {
	engine := NewEngine(nil)
	var motion, alert int
	engine.AddRule(countingRule("motion", OnType(event.TypeMotionDetected), &motion))
	engine.AddRule(countingRule("alert", OnType(event.TypeSystemAlert), &alert))

	engine.Handle(motionEvent("sensor-1"))

	if motion != 1 {
		t.Errorf("motion rule fired %d times, want 1", motion)
	}
	if alert != 0 {
		t.Errorf("alert rule fired %d times, want 0", alert)
	}
}

func TestEngine_Handle_AdditionOrder(t *testing.T) {
	engine := NewEngine(nil)
	var order []string
	for _, id := range []string{"first", "second", "third"} {
		id := id
		engine.AddRule(&Rule{
			ID:        id,
			Name:      id,
			Condition: OnType(event.TypeMotionDetected),
			Action: func(event.Event) error {
				order = append(order, id)
				return nil
			},
		})
	}

	engine.Handle(motionEvent("sensor-1"))

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, order[i], want[i])
		}
	}
}

func TestEngine_Handle_FailingActionDoesNotStopLaterRules(t *testing.T) {
	engine := NewEngine(nil)
	engine.AddRule(&Rule{
		ID:        "failing",
		Name:      "failing",
		Condition: OnType(event.TypeMotionDetected),
		Action:    func(event.Event) error { return errors.New("action broken") },
	})
	var after int
	engine.AddRule(countingRule("after", OnType(event.TypeMotionDetected), &after))

	if err := engine.Handle(motionEvent("sensor-1")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if after != 1 {
		t.Error("rule after the failing one did not run")
	}
}

func TestEngine_RemoveRule(t *testing.T) {
	engine := NewEngine(nil)
	var n int
	engine.AddRule(countingRule("r1", OnType(event.TypeMotionDetected), &n))

	if err := engine.RemoveRule("r1"); err != nil {
		t.Fatalf("RemoveRule() error = %v", err)
	}
	engine.Handle(motionEvent("sensor-1"))
	if n != 0 {
		t.Error("removed rule fired")
	}
	if err := engine.RemoveRule("r1"); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestEngine_OneShotRuleKeepsEvaluationOrder(t *testing.T) {
	engine := NewEngine(nil)
	var order []string

	// r1 removes itself when it fires; r2 and r3 must still each run
	// exactly once, in addition order.
	engine.AddRule(&Rule{
		ID:        "r1",
		Name:      "one shot",
		Condition: OnType(event.TypeMotionDetected),
		Action: func(event.Event) error {
			order = append(order, "r1")
			return engine.RemoveRule("r1")
		},
	})
	for _, id := range []string{"r2", "r3"} {
		id := id
		engine.AddRule(&Rule{
			ID:        id,
			Name:      id,
			Condition: OnType(event.TypeMotionDetected),
			Action: func(event.Event) error {
				order = append(order, id)
				return nil
			},
		})
	}

	engine.Handle(motionEvent("sensor-1"))

	want := []string{"r1", "r2", "r3"}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("fired %v, want %v", order, want)
		}
	}

	// The one-shot rule is gone for the next event.
	order = nil
	engine.Handle(motionEvent("sensor-1"))
	if len(order) != 2 || order[0] != "r2" || order[1] != "r3" {
		t.Errorf("second event fired %v, want [r2 r3]", order)
	}
}

func TestEngine_SetEnabled(t *testing.T) {
	engine := NewEngine(nil)
	var n int
	engine.AddRule(countingRule("r1", OnType(event.TypeMotionDetected), &n))

	engine.SetEnabled("r1", false)
	engine.Handle(motionEvent("sensor-1"))
	if n != 0 {
		t.Error("disabled rule fired")
	}

	engine.SetEnabled("r1", true)
	engine.Handle(motionEvent("sensor-1"))
	if n != 1 {
		t.Error("re-enabled rule did not fire")
	}
}

func TestConditions(t *testing.T) {
	high := event.New(event.TypeTemperatureThreshold, "climate", event.Payload{
		"temperature": 30.0,
		"direction":   "above",
	})

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"on type match", OnType(event.TypeTemperatureThreshold), true},
		{"on type mismatch", OnType(event.TypeMotionDetected), false},
		{"from source match", FromSource("climate"), true},
		{"from source mismatch", FromSource("perimeter"), false},
		{"payload above", PayloadAbove("temperature", 26.0), true},
		{"payload above not exceeded", PayloadAbove("temperature", 35.0), false},
		{"payload above missing key", PayloadAbove("humidity", 1.0), false},
		{"payload below", PayloadBelow("temperature", 35.0), true},
		{"payload equals", PayloadEquals("direction", "above"), true},
		{"and all match", And(OnType(event.TypeTemperatureThreshold), FromSource("climate")), true},
		{"and one fails", And(OnType(event.TypeTemperatureThreshold), FromSource("perimeter")), false},
		{"or one matches", Or(FromSource("perimeter"), FromSource("climate")), true},
		{"not", Not(FromSource("climate")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond(high); got != tt.want {
				t.Errorf("condition = %v, want %v", got, tt.want)
			}
		})
	}
}
