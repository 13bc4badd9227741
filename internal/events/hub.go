package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apolaki-ghub/Project3/internal/models"
)

const TypeReportWritten = "report.written"

// Event is pushed to listeners whenever a new report lands on disk.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Recording string    `json:"recording"`
	Report    string    `json:"report"`
	Source    string    `json:"source"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReportWritten(entry *models.ReportEntry) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      TypeReportWritten,
		Recording: entry.Recording,
		Report:    entry.Report,
		Source:    entry.Source,
		Label:     entry.Label,
		CreatedAt: entry.CreatedAt,
	}
}

// Hub fans events out to subscribers. Publish never blocks: a subscriber whose
// buffer is full misses the event.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	buffer      int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subscribers: make(map[chan Event]struct{}), buffer: buffer}
}

// Subscribe returns a channel of events and a function that detaches it.
// The channel is closed once unsubscribed.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
