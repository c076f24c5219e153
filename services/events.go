package services

import (
	"sync"
	"time"

	"hotel-lifecycle-backend/models"
)

type EventKind string

const (
	EventBookingCreated     EventKind = "booking_created"
	EventBookingTransition  EventKind = "booking_transition"
	EventRoomStatusChanged  EventKind = "room_status_changed"
	EventMaintenanceChanged EventKind = "maintenance_changed"
)

// Event describes one committed entity change. Published after the
// surrounding transaction commits, never before.
type Event struct {
	Kind EventKind `json:"kind"`
	At   time.Time `json:"at"`

	RoomID     uint              `json:"roomId,omitempty"`
	RoomStatus models.RoomStatus `json:"roomStatus,omitempty"`

	BookingID     uint                 `json:"bookingId,omitempty"`
	BookingStatus models.BookingStatus `json:"bookingStatus,omitempty"`

	RequestID         uint                     `json:"requestId,omitempty"`
	MaintenanceStatus models.MaintenanceStatus `json:"maintenanceStatus,omitempty"`
}

// eventBus fans committed changes out to subscribers. Delivery is
// best-effort: a subscriber whose buffer is full misses the event, so
// consumers must tolerate loss (the stats cache does, via TTL expiry).
type eventBus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func newEventBus() *eventBus {
	return &eventBus{subs: make(map[int]chan Event)}
}

func (b *eventBus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *eventBus) Publish(events ...Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ev := range events {
		if ev.At.IsZero() {
			ev.At = time.Now().UTC()
		}
		for _, ch := range b.subs {
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
