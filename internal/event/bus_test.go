package event

import (
	"errors"
	"testing"
)

// stubSubscriber records the events it receives and can be told to fail
// or panic.
type stubSubscriber struct {
	name   string
	seen   []Event
	fail   error
	panics bool
}

func (s *stubSubscriber) Name() string { return s.name }

func (s *stubSubscriber) Handle(e Event) error {
	if s.panics {
		panic("boom")
	}
	if s.fail != nil {
		return s.fail
	}
	s.seen = append(s.seen, e)
	return nil
}

// orderedSubscriber appends its name to a shared slice on delivery.
type orderedSubscriber struct {
	name  string
	calls *[]string
}

func (s *orderedSubscriber) Name() string { return s.name }

func (s *orderedSubscriber) Handle(Event) error {
	*s.calls = append(*s.calls, s.name)
	return nil
}

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(nil)
	a := &stubSubscriber{name: "a"}
	b := &stubSubscriber{name: "b"}
	bus.Subscribe(a)
	bus.Subscribe(b)

	delivered := bus.Publish(New(TypeSystemAlert, "test", nil))
	if delivered != 2 {
		t.Errorf("Publish() = %d, want 2", delivered)
	}
	if len(a.seen) != 1 || len(b.seen) != 1 {
		t.Errorf("deliveries: a=%d b=%d, want 1 each", len(a.seen), len(b.seen))
	}
}

func TestBus_DeliveryOrderIsSubscriptionOrder(t *testing.T) {
	bus := NewBus(nil)
	var calls []string
	for _, name := range []string{"first", "second", "third"} {
		bus.Subscribe(&orderedSubscriber{name: name, calls: &calls})
	}

	bus.Publish(New(TypeSystemAlert, "test", nil))

	want := []string{"first", "second", "third"}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, calls[i], want[i])
		}
	}
}

func TestBus_ExactlyOncePerPublish(t *testing.T) {
	bus := NewBus(nil)
	sub := &stubSubscriber{name: "once"}
	bus.Subscribe(sub)

	bus.Publish(New(TypeSystemAlert, "test", nil))
	bus.Publish(New(TypeSystemAlert, "test", nil))

	if len(sub.seen) != 2 {
		t.Errorf("expected one delivery per publish, got %d for 2 publishes", len(sub.seen))
	}
}

func TestBus_TypeFilter(t *testing.T) {
	bus := NewBus(nil)
	motionOnly := &stubSubscriber{name: "motion"}
	everything := &stubSubscriber{name: "all"}
	bus.Subscribe(motionOnly, TypeMotionDetected)
	bus.Subscribe(everything)

	bus.Publish(New(TypeMotionDetected, "sensor-1", nil))
	bus.Publish(New(TypeSystemAlert, "test", nil))

	if len(motionOnly.seen) != 1 {
		t.Errorf("filtered subscriber saw %d events, want 1", len(motionOnly.seen))
	}
	if len(everything.seen) != 2 {
		t.Errorf("unfiltered subscriber saw %d events, want 2", len(everything.seen))
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	sub := &stubSubscriber{name: "leaver"}
	bus.Subscribe(sub)

	if !bus.Unsubscribe(sub) {
		t.Fatal("Unsubscribe() = false, want true")
	}
	bus.Publish(New(TypeSystemAlert, "test", nil))
	if len(sub.seen) != 0 {
		t.Errorf("detached subscriber received %d events", len(sub.seen))
	}
	if bus.Unsubscribe(sub) {
		t.Error("second Unsubscribe() = true, want false")
	}
}

func TestBus_FailingSubscriberDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(nil)
	failing := &stubSubscriber{name: "failing", fail: errors.New("handler broken")}
	after := &stubSubscriber{name: "after"}
	bus.Subscribe(failing)
	bus.Subscribe(after)

	delivered := bus.Publish(New(TypeSystemAlert, "test", nil))
	if delivered != 1 {
		t.Errorf("Publish() = %d, want 1", delivered)
	}
	if len(after.seen) != 1 {
		t.Error("subscriber after the failing one was not notified")
	}
}

func TestBus_PanickingSubscriberIsIsolated(t *testing.T) {
	bus := NewBus(nil)
	panicking := &stubSubscriber{name: "panicking", panics: true}
	after := &stubSubscriber{name: "after"}
	bus.Subscribe(panicking)
	bus.Subscribe(after)

	delivered := bus.Publish(New(TypeSystemAlert, "test", nil))
	if delivered != 1 {
		t.Errorf("Publish() = %d, want 1", delivered)
	}
	if len(after.seen) != 1 {
		t.Error("subscriber after the panicking one was not notified")
	}
}

// selfDetachingSubscriber unsubscribes itself from inside Handle.
type selfDetachingSubscriber struct {
	name string
	bus  *Bus
	seen int
}

func (s *selfDetachingSubscriber) Name() string { return s.name }

func (s *selfDetachingSubscriber) Handle(Event) error {
	s.seen++
	s.bus.Unsubscribe(s)
	return nil
}

func TestBus_DetachDuringDeliveryKeepsOrder(t *testing.T) {
	bus := NewBus(nil)
	a := &selfDetachingSubscriber{name: "a", bus: bus}
	b := &stubSubscriber{name: "b"}
	c := &stubSubscriber{name: "c"}
	bus.Subscribe(a)
	bus.Subscribe(b)
	bus.Subscribe(c)

	delivered := bus.Publish(New(TypeSystemAlert, "test", nil))

	// The detaching subscriber still counts for this publish; b and c
	// each see the event exactly once.
	if delivered != 3 {
		t.Errorf("Publish() = %d, want 3", delivered)
	}
	if len(b.seen) != 1 {
		t.Errorf("b saw %d events, want 1", len(b.seen))
	}
	if len(c.seen) != 1 {
		t.Errorf("c saw %d events, want 1", len(c.seen))
	}

	// The detachment itself took effect for the next publish.
	bus.Publish(New(TypeSystemAlert, "test", nil))
	if a.seen != 1 {
		t.Errorf("detached subscriber saw %d events, want 1", a.seen)
	}
	if len(b.seen) != 2 || len(c.seen) != 2 {
		t.Errorf("remaining subscribers: b=%d c=%d, want 2 each", len(b.seen), len(c.seen))
	}
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus(nil)
	if delivered := bus.Publish(New(TypeSystemAlert, "test", nil)); delivered != 0 {
		t.Errorf("Publish() with no subscribers = %d, want 0", delivered)
	}
}

func TestNew_CopiesPayload(t *testing.T) {
	payload := Payload{"device_id": "sensor-1"}
	e := New(TypeMotionDetected, "perimeter", payload)

	payload["device_id"] = "tampered"
	if id, _ := e.Payload.String("device_id"); id != "sensor-1" {
		t.Errorf("payload not isolated: %q", id)
	}
	if e.Time.IsZero() {
		t.Error("expected timestamp to be stamped")
	}
}
