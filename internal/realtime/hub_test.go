package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHubDeliversToOwnUserOnly(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()
	bob := uuid.New()

	aliceCh, cancelAlice := hub.Subscribe(alice)
	defer cancelAlice()
	bobCh, cancelBob := hub.Subscribe(bob)
	defer cancelBob()

	hub.Publish(Event{UserID: alice, Type: "lesson_assigned", At: time.Now()})

	select {
	case ev := <-aliceCh:
		if ev.Type != "lesson_assigned" {
			t.Fatalf("type = %q, want lesson_assigned", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("alice never received her event")
	}

	select {
	case ev := <-bobCh:
		t.Fatalf("bob received alice's event: %+v", ev)
	default:
	}
}

func TestHubDropsSlowConsumers(t *testing.T) {
	hub := NewHub()
	user := uuid.New()

	ch, cancel := hub.Subscribe(user)
	defer cancel()

	// Buffer is 16; overflow must not block the publisher.
	for i := 0; i < 40; i++ {
		hub.Publish(Event{UserID: user, Type: "tick"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received == 0 || received > 16 {
		t.Fatalf("received = %d, want 1..16", received)
	}
}

func TestHubCancelRemovesSubscription(t *testing.T) {
	hub := NewHub()
	user := uuid.New()

	ch, cancel := hub.Subscribe(user)
	cancel()

	if _, open := <-ch; open {
		t.Fatal("channel should be closed after cancel")
	}

	// Publishing after cancel must not panic.
	hub.Publish(Event{UserID: user, Type: "tick"})
}
