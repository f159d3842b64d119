// Package mqtt provides the broker connection for the optional event mirror.
//
// When mqtt.enabled is set in config.yaml, published events are mirrored as
// JSON to emberhome/event/{type}/{source} so external consumers (dashboards,
// recorders) can follow the simulation. The core pipeline never depends on
// the broker: mirroring is a subscriber like any other, and publish failures
// are logged and swallowed.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.EventTopic("motion_detected", "sensor-hall-1")
//	err = client.Publish(topic, payload, 1, false)
//
// # Connection Lifecycle
//
//   - Auto-reconnect with exponential backoff (1s initial, 60s max)
//   - Last Will and Testament announces unclean disconnects
//   - Retained status messages on emberhome/system/status/{client_id}
package mqtt
