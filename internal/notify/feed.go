package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one alert recorded by the feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	Amount    string    `json:"amount,omitempty"`
}

// DefaultFeedSize is the number of events a feed keeps.
const DefaultFeedSize = 200

// Feed is a channel that keeps recent alerts in memory and forwards them to
// live subscribers. Slow subscribers miss events rather than block delivery.
type Feed struct {
	size int

	mu        sync.RWMutex
	events    []Event
	nextSubID int
	subs      map[int]chan Event
}

// NewFeed returns a feed retaining up to size events.
func NewFeed(size int) *Feed {
	if size < 1 {
		size = DefaultFeedSize
	}
	return &Feed{size: size, subs: make(map[int]chan Event)}
}

func (f *Feed) Name() string { return "feed" }

func (f *Feed) Deliver(_ context.Context, n Notification) error {
	f.Publish(Event{
		ID:        uuid.NewString(),
		Type:      "alert",
		Timestamp: time.Now(),
		Title:     n.Title,
		Message:   n.Message,
		Category:  n.Category,
		Tier:      n.Tier,
		Amount:    n.Amount,
	})
	return nil
}

// Publish records ev and fans it out.
func (f *Feed) Publish(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, ev)
	if len(f.events) > f.size {
		f.events = f.events[len(f.events)-f.size:]
	}

	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Events returns a copy of the retained events, oldest first.
func (f *Feed) Events() []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Subscribe registers for new events. Call the returned func to unsubscribe.
func (f *Feed) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	f.mu.Lock()
	f.nextSubID++
	id := f.nextSubID
	f.subs[id] = ch
	f.mu.Unlock()

	return ch, func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// SubscriberCount returns the number of live subscribers.
func (f *Feed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
