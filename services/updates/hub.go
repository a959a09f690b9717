// Package updates provides the in-process publish/subscribe hub behind the
// app's live screens: appointment status changes and the campaign feed.
// Subscribers register explicitly and must call their cancel func on
// teardown; there is no global listener registry.
package updates

import (
	"sync"
	"time"
)

// Topics published by the services.
const (
	TopicCampaigns = "campaigns"
)

// AppointmentTopic returns the per-user topic for appointment updates.
func AppointmentTopic(userID string) string {
	return "appointments:" + userID
}

// Event is a single update pushed to subscribers.
type Event struct {
	Topic   string      `json:"topic"`
	Kind    string      `json:"kind"` // e.g. "appointment", "campaign"
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// Hub fans events out to per-topic subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event and is expected to
// re-read current state when it catches up.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan Event
	nextID int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan Event)}
}

const subscriberBuffer = 8

// Subscribe registers a new subscriber for a topic. The returned cancel func
// removes the registration and closes the channel; it is safe to call more
// than once.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]chan Event)
	}
	id := h.nextID
	h.nextID++
	ch := make(chan Event, subscriberBuffer)
	h.subs[topic][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[topic][id]; ok {
				delete(h.subs[topic], id)
				close(ch)
				if len(h.subs[topic]) == 0 {
					delete(h.subs, topic)
				}
			}
		})
	}
	return ch, cancel
}

// Publish delivers an event to every current subscriber of its topic.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[e.Topic] {
		select {
		case ch <- e:
		default:
			// Slow subscriber, drop.
		}
	}
}

// SubscriberCount reports the number of active subscribers for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}
