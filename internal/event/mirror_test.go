package event

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rowanveitch/ember-core/internal/infrastructure/mqtt"
)

type fakeBroker struct {
	topics   []string
	payloads [][]byte
	fail     error
}

func (f *fakeBroker) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if f.fail != nil {
		return f.fail
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestMirror_PublishesJSON(t *testing.T) {
	broker := &fakeBroker{}
	mirror := NewMirror(broker, mqtt.EventTopic, 1)

	e := New(TypeMotionDetected, "perimeter", Payload{"device_id": "sensor-1"})
	if err := mirror.Handle(e); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(broker.topics) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(broker.topics))
	}
	if broker.topics[0] != "emberhome/event/motion_detected/perimeter" {
		t.Errorf("topic = %q", broker.topics[0])
	}

	var wire struct {
		Type    string         `json:"type"`
		Source  string         `json:"source"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(broker.payloads[0], &wire); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if wire.Type != "motion_detected" || wire.Source != "perimeter" {
		t.Errorf("wire event = %+v", wire)
	}
	if wire.Payload["device_id"] != "sensor-1" {
		t.Errorf("wire payload = %v", wire.Payload)
	}
}

func TestMirror_BrokerFailureDoesNotStopBus(t *testing.T) {
	broker := &fakeBroker{fail: errors.New("broker offline")}
	bus := NewBus(nil)
	bus.Subscribe(NewMirror(broker, mqtt.EventTopic, 1))
	after := &stubSubscriber{name: "after"}
	bus.Subscribe(after)

	delivered := bus.Publish(New(TypeSystemAlert, "test", nil))
	if delivered != 1 {
		t.Errorf("Publish() = %d, want 1", delivered)
	}
	if len(after.seen) != 1 {
		t.Error("subscriber after the mirror was not notified")
	}
}
