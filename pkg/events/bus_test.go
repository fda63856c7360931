package events

import (
	"testing"
)

func newTestBus() *Bus {
	return &Bus{subscribers: make(map[string]chan Event)}
}

func TestPublishFansOutToSubscribers(t *testing.T) {
	b := newTestBus()

	id1, ch1 := b.Subscribe()
	id2, ch2 := b.Subscribe()
	defer b.Unsubscribe(id1)
	defer b.Unsubscribe(id2)

	b.Publish(TypePremiumGranted, map[string]string{"user": "u1"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Type != TypePremiumGranted {
				t.Errorf("subscriber %d got type %v, want %v", i, event.Type, TypePremiumGranted)
			}
			if event.ID == "" || event.Timestamp == 0 {
				t.Errorf("subscriber %d got event without id/timestamp: %+v", i, event)
			}
		default:
			t.Errorf("subscriber %d received no event", i)
		}
	}
}

func TestPublishDropsWhenSubscriberFull(t *testing.T) {
	b := newTestBus()

	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	// Fill the buffer past capacity; Publish must never block.
	for i := 0; i < 32; i++ {
		b.Publish(TypeCodeRedeemed, nil)
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered events = %d, want %d", got, cap(ch))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := newTestBus()

	id, ch := b.Subscribe()
	if b.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", b.SubscriberCount())
	}

	b.Unsubscribe(id)
	if b.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", b.SubscriberCount())
	}

	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}

	// Double unsubscribe is a no-op.
	b.Unsubscribe(id)
}
