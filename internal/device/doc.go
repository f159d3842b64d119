// Package device provides the simulated device layer for Ember Core.
//
// Devices are in-memory simulations: lights, thermostats, locks, cameras,
// and motion sensors whose state lives in attribute maps. Family factories
// construct them, behaviour wrappers extend them, and the Registry holds
// the live set for a site.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                          Device Layer                            │
//	│                                                                  │
//	│  ┌───────────────┐   ┌────────────────┐   ┌──────────────────┐  │
//	│  │    Catalog    │   │    Wrappers    │   │     Registry     │  │
//	│  │  (factory.go) │──▶│ timer/security │──▶│  (registry.go)   │  │
//	│  │               │   │ energy/history │   │                  │  │
//	│  │ • kind        │   │ notifier       │   │ • Add/Get/Remove │  │
//	│  │   dispatch    │   │                │   │ • kind/cap query │  │
//	│  └───────────────┘   └────────────────┘   └──────────────────┘  │
//	└──────────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Device: the behavioural contract every device and wrapper satisfies
//   - Kind: device classification (light, thermostat, lock, ...)
//   - Capability: what a device can do (power, brightness, motion, ...)
//   - State: the attribute map a device exposes and accepts changes to
//   - Factory / Catalog: construction by kind, never by concrete type
//   - Wrapper: the forwarding base every behaviour extension embeds
//
// # Usage
//
//	catalog := device.DefaultCatalog()
//	lamp, err := catalog.Create(device.KindLight, "Hall Lamp", device.Config{
//	    "dimmable": true,
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Stack behaviour onto the device; the result is still a Device.
//	monitored := device.NewEnergyMonitor(device.NewSecurity(lamp), 1.0, nil)
//
//	registry := device.NewRegistry(log)
//	if err := registry.Add(monitored); err != nil {
//	    return err
//	}
//	registry.ApplyState(monitored.ID(), device.State{"power": true})
//
// # Wrapping
//
// Wrappers compose in any order and never change the identity surface of
// the device they wrap: ID, Name, Kind, and Capabilities always report the
// underlying device's values. Unwrap peels the layers back off when the
// concrete device is needed.
//
// # Thread Safety
//
// The Registry is safe for concurrent use. Individual devices and wrappers
// are not; the pipeline drives them from a single goroutine.
package device
