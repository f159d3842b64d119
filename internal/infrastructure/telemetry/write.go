package telemetry

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteEventPoint records a published event occurrence.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Example:
//
//	client.WriteEventPoint("motion_detected", "sensor-hall-1")
func (c *Client) WriteEventPoint(eventType string, source string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"events",
		map[string]string{
			"event_type": eventType,
			"source":     source,
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEnergyPoint records the cumulative simulated energy usage of a device.
//
// Used by the energy monitor's telemetry sink.
//
// Parameters:
//   - deviceID: Device identifier
//   - usage: Cumulative usage in simulation units
func (c *Client) WriteEnergyPoint(deviceID string, usage float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"energy",
		map[string]string{
			"device_id": deviceID,
		},
		map[string]interface{}{
			"usage": usage,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteStatePoint records a numeric device state reading.
//
// Example:
//
//	client.WriteStatePoint("therm-bed-1", "target_temperature", 21.5)
func (c *Client) WriteStatePoint(deviceID string, field string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_state",
		map[string]string{
			"device_id": deviceID,
			"field":     field,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
