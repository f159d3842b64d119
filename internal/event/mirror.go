package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// MQTTPublisher is the broker surface the mirror needs. The
// infrastructure mqtt client satisfies it.
type MQTTPublisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// TopicFunc maps an event to the broker topic it is mirrored on.
type TopicFunc func(eventType, source string) string

// Mirror republishes every event it sees to an MQTT broker as JSON. Like
// the recorder it is an ordinary subscriber: a broker outage fails its
// Handle and the rest of the pipeline carries on.
type Mirror struct {
	client MQTTPublisher
	topic  TopicFunc
	qos    byte
}

// wireEvent is the JSON shape published to the broker.
type wireEvent struct {
	Type    Type    `json:"type"`
	Source  string  `json:"source"`
	Time    string  `json:"time"`
	Payload Payload `json:"payload,omitempty"`
}

// NewMirror creates a mirror publishing on topics from topic at the given
// QoS.
func NewMirror(client MQTTPublisher, topic TopicFunc, qos byte) *Mirror {
	return &Mirror{client: client, topic: topic, qos: qos}
}

// Name implements Subscriber.
func (m *Mirror) Name() string { return "mqtt-mirror" }

// Handle marshals the event and publishes it.
func (m *Mirror) Handle(e Event) error {
	payload, err := json.Marshal(wireEvent{
		Type:    e.Type,
		Source:  e.Source,
		Time:    e.Time.Format(time.RFC3339Nano),
		Payload: e.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshalling event for broker: %w", err)
	}
	return m.client.Publish(m.topic(string(e.Type), e.Source), payload, m.qos, false)
}
