package automation

import (
	"errors"
	"testing"

	"github.com/rowanveitch/ember-core/internal/device"
	"github.com/rowanveitch/ember-core/internal/event"
)

// TestMotionTurnsOnHallLight exercises the full pipeline: a motion report
// fans out to the notifier, the log, and the engine, whose rule switches
// the hall light on before Publish returns.
func TestMotionTurnsOnHallLight(t *testing.T) {
	bus := event.NewBus(nil)
	registry := device.NewRegistry(nil)
	eventLog := event.NewLog(100)
	notifier := event.NewNotifier("panel", 100)
	engine := NewEngine(nil)

	lamp := device.NewLight("hall-light", "Hall Light", true, false)
	if err := registry.Add(lamp); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := engine.AddRule(&Rule{
		ID:        "hall-motion-light",
		Name:      "Hall light on motion",
		Condition: OnType(event.TypeMotionDetected),
		Action:    ApplyState(registry, "hall-light", device.State{"power": true}),
	}); err != nil {
		t.Fatalf("AddRule() error = %v", err)
	}

	bus.Subscribe(notifier)
	bus.Subscribe(eventLog)
	bus.Subscribe(engine)

	security := event.NewSecuritySystem(bus, "perimeter")
	security.ReportMotion("hall-sensor")

	// By the time ReportMotion returns, every effect has happened.
	if on, _ := lamp.State()["power"].(bool); !on {
		t.Error("hall light not on after motion")
	}
	if eventLog.Len() != 1 {
		t.Errorf("event log has %d events, want 1", eventLog.Len())
	}
	if len(notifier.Notifications()) != 1 {
		t.Errorf("notifier has %d messages, want 1", len(notifier.Notifications()))
	}
}

// TestEnergyAccountedThroughPipeline drives one on/off cycle through a
// fully wrapped light and checks the accrued cost.
func TestEnergyAccountedThroughPipeline(t *testing.T) {
	const cost = 1.0
	bus := event.NewBus(nil)
	registry := device.NewRegistry(nil)
	engine := NewEngine(nil)

	lamp := device.NewLight("hall-light", "Hall Light", false, false)
	monitored := device.NewEnergyMonitor(lamp, cost, nil)
	announced := device.NewNotifier(monitored, event.NewStatePublisher(bus), nil)
	if err := registry.Add(announced); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	engine.AddRule(&Rule{
		ID:        "motion-on",
		Name:      "on with motion",
		Condition: OnType(event.TypeMotionDetected),
		Action:    ApplyState(registry, "hall-light", device.State{"power": true}),
	})
	engine.AddRule(&Rule{
		ID:        "absence-off",
		Name:      "off when user leaves",
		Condition: OnType(event.TypeUserAbsence),
		Action:    ApplyState(registry, "hall-light", device.State{"power": false}),
	})

	stateLog := event.NewLog(10)
	bus.Subscribe(stateLog, event.TypeDeviceStateChanged)
	bus.Subscribe(engine, event.TypeMotionDetected, event.TypeUserAbsence)

	event.NewSecuritySystem(bus, "perimeter").ReportMotion("hall-sensor")
	bus.Publish(event.New(event.TypeUserAbsence, "presence", nil))

	if got, want := monitored.Usage(), 2*cost; got != want {
		t.Errorf("Usage() = %v, want %v", got, want)
	}
	// Both transitions were announced on the bus.
	if stateLog.Len() != 2 {
		t.Errorf("state change events = %d, want 2", stateLog.Len())
	}
}

// TestArmedDeviceRejectsRuleAction checks that a security-gated device
// turns a rule action into a logged failure without derailing the bus.
func TestArmedDeviceRejectsRuleAction(t *testing.T) {
	bus := event.NewBus(nil)
	registry := device.NewRegistry(nil)
	engine := NewEngine(nil)

	lamp := device.NewLight("hall-light", "Hall Light", false, false)
	gated := device.NewSecurity(lamp)
	gated.Arm()
	registry.Add(gated)

	var actionErr error
	engine.AddRule(&Rule{
		ID:        "motion-on",
		Name:      "on with motion",
		Condition: OnType(event.TypeMotionDetected),
		Action: func(e event.Event) error {
			actionErr = registry.ApplyState("hall-light", device.State{"power": true})
			return actionErr
		},
	})
	bus.Subscribe(engine)

	event.NewSecuritySystem(bus, "perimeter").ReportMotion("hall-sensor")

	if !errors.Is(actionErr, device.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized from gated device, got %v", actionErr)
	}
	if on, _ := lamp.State()["power"].(bool); on {
		t.Error("armed device changed state")
	}
}
