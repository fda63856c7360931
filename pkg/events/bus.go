// Package events is the in-process event bus for entitlement activity. Every
// event fans out to local subscribers (the websocket feed) and is mirrored to
// the MQTT broker for external consumers.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/google/uuid"
)

// Event types published by the bot.
const (
	TypePremiumGranted   = "premium.granted"
	TypePremiumRevoked   = "premium.revoked"
	TypePremiumExpired   = "premium.expired"
	TypeCodeRedeemed     = "code.redeemed"
	TypePartnerSubmitted = "partner.submitted"
	TypePartnerAccepted  = "partner.accepted"
	TypePartnerRejected  = "partner.rejected"
)

// Event is one entitlement activity record.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Mirror publishes events to an external broker. Satisfied by the MQTT
// communicator.
type Mirror interface {
	Publish(topic string, payload interface{}) error
	IsConnected() bool
}

// Bus fans events out to subscribers and the mirror.
type Bus struct {
	mirror      Mirror
	subscribers map[string]chan Event
	mu          sync.RWMutex
}

var (
	bus     *Bus
	busOnce sync.Once
)

// Init initializes the global event bus. The mirror may be nil.
func Init(mirror Mirror) *Bus {
	busOnce.Do(func() {
		bus = &Bus{
			mirror:      mirror,
			subscribers: make(map[string]chan Event),
		}
	})
	return bus
}

// Get returns the global event bus.
func Get() *Bus {
	busOnce.Do(func() {
		bus = &Bus{subscribers: make(map[string]chan Event)}
	})
	return bus
}

// Publish fans an event out to every subscriber and mirrors it to MQTT.
// Slow subscribers drop events rather than block the caller.
func (b *Bus) Publish(eventType string, payload interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}

	b.mu.RLock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
	b.mu.RUnlock()

	if b.mirror != nil && b.mirror.IsConnected() {
		go func() {
			if err := b.mirror.Publish("valuamor/events/"+eventType, event); err != nil {
				logger.Warn(fmt.Sprintf("Event mirror for %s failed: %v", eventType, err), "Events")
			}
		}()
	}
}

// Subscribe registers a new subscriber and returns its id and channel.
func (b *Bus) Subscribe() (string, <-chan Event) {
	id := uuid.New().String()
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, exists := b.subscribers[id]; exists {
		delete(b.subscribers, id)
		close(ch)
	}
}

// SubscriberCount returns how many live subscribers the bus has.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Publish publishes on the global bus.
func Publish(eventType string, payload interface{}) {
	Get().Publish(eventType, payload)
}
