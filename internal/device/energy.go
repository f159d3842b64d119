package device

import "reflect"

// UsageSink receives cumulative usage after every counted command. Sinks
// are optional; a nil sink means usage is only held in memory.
type UsageSink interface {
	RecordUsage(deviceID string, usage float64)
}

// EnergyMonitor accrues a fixed cost for every command that actually
// changes device state. Commands that leave the state untouched are free.
type EnergyMonitor struct {
	Wrapper
	costPerCommand float64
	commands       int
	sink           UsageSink
}

// NewEnergyMonitor wraps d, charging costPerCommand per state-changing
// command. sink may be nil.
func NewEnergyMonitor(d Device, costPerCommand float64, sink UsageSink) *EnergyMonitor {
	return &EnergyMonitor{
		Wrapper:        Wrap(d),
		costPerCommand: costPerCommand,
		sink:           sink,
	}
}

// Apply delegates the change and charges for it when the resulting state
// differs from the state before.
func (e *EnergyMonitor) Apply(changes State) error {
	before := e.Wrapper.State()
	if err := e.Wrapper.Apply(changes); err != nil {
		return err
	}
	after := e.Wrapper.State()
	if !reflect.DeepEqual(before, after) {
		e.commands++
		if e.sink != nil {
			e.sink.RecordUsage(e.ID(), e.Usage())
		}
	}
	return nil
}

// Usage returns the accrued cost: counted commands times the per-command
// cost.
func (e *EnergyMonitor) Usage() float64 {
	return float64(e.commands) * e.costPerCommand
}

// Commands returns the number of counted state-changing commands.
func (e *EnergyMonitor) Commands() int { return e.commands }

// Reset zeroes the accrued usage.
func (e *EnergyMonitor) Reset() { e.commands = 0 }

// State reports the wrapped device's state plus "energy_usage".
func (e *EnergyMonitor) State() State {
	state := e.Wrapper.State()
	state["energy_usage"] = e.Usage()
	return state
}
