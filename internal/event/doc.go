// Package event provides the synchronous event pipeline for Ember Core.
//
// Events flow from publishers through the Bus to subscribers on the
// publishing goroutine, in subscription order. Publish returns only after
// every interested subscriber has run, so event effects are fully applied
// before the publisher continues. A failing or panicking subscriber is
// logged and skipped; it never stops delivery to the rest.
//
// # Key Types
//
//   - Event / Type / Payload: one occurrence on the bus
//   - Bus: ordered synchronous fan-out with per-subscriber type filters
//   - Subscriber: the contract bus consumers implement
//   - SecuritySystem / EnvironmentMonitor: domain publishers
//   - Notifier: renders events into a bounded message history
//   - Log: bounded in-memory event record for the CLI
//   - Recorder: persists events via Repository (SQLite)
//   - Mirror: republishes events to an MQTT broker as JSON
//   - StatePublisher: adapts the bus to the device layer's announcements
//
// # Usage
//
//	bus := event.NewBus(log)
//	notifier := event.NewNotifier("wall-panel", 200)
//	bus.Subscribe(notifier, event.TypeMotionDetected, event.TypeSystemAlert)
//	bus.Subscribe(event.NewLog(1000))
//
//	security := event.NewSecuritySystem(bus, "perimeter")
//	security.ReportMotion("sensor-1") // notifier and log have both run
//
// # Thread Safety
//
// The Bus is not safe for concurrent use. The pipeline runs on a single
// goroutine so delivery order stays deterministic.
package event
