package messaging

import (
	"context"
	"testing"
	"time"

	"marlowe/internal/shared/events"
)

func TestKafkaPublishReachesSubscriber(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("NewKafka: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err = bus.Subscribe(ctx, "licensing.events", "test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	sent := events.Envelope{
		EventID:   "evt-1",
		EventType: "licensing.grant_purchased",
	}
	if err := bus.Publish(ctx, "licensing.events", sent); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case event := <-received:
		if event.EventID != sent.EventID {
			t.Fatalf("event id = %q, want %q", event.EventID, sent.EventID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not receive event")
	}
}

func TestKafkaPublishWithoutSubscribersSucceeds(t *testing.T) {
	bus, err := NewKafka([]string{"localhost:9092"}, nil)
	if err != nil {
		t.Fatalf("NewKafka: %v", err)
	}
	if err := bus.Publish(context.Background(), "licensing.events", events.Envelope{EventID: "evt-2"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
