// Package telemetry provides the InfluxDB sink for simulation metrics.
//
// When telemetry.enabled is set in config.yaml, the core records event
// occurrences and simulated energy usage as time-series points. Writes are
// batched and non-blocking; a failed or absent InfluxDB never affects the
// event pipeline.
//
// # Usage
//
//	client, err := telemetry.Connect(cfg.Telemetry)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteEventPoint("motion_detected", "sensor-hall-1")
//	client.WriteEnergyPoint("light-living-1", 4.0)
package telemetry
