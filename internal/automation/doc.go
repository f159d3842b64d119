// Package automation provides the rule engine for Ember Core.
//
// The engine is an ordinary event subscriber: rules bind a condition to
// an action, and every event reaching the engine is checked against the
// rules in the order they were added. Because the bus is synchronous,
// rule actions have fully run by the time the triggering publish returns.
//
// Conditions compose from small builders (OnType, FromSource,
// PayloadAbove, And, ...) and actions target the device registry
// (ApplyState, ApplyStateByKind) or run arbitrary code.
//
//	engine := automation.NewEngine(log)
//	engine.AddRule(&automation.Rule{
//	    ID:        "hall-motion-light",
//	    Name:      "Hall light on motion",
//	    Condition: automation.OnType(event.TypeMotionDetected),
//	    Action:    automation.ApplyState(registry, "hall-light", device.State{"power": true}),
//	})
//	bus.Subscribe(engine)
//
// A failing rule action is logged and skipped; later rules and later bus
// subscribers are unaffected.
package automation
