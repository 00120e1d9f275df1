package events

import (
	"context"
	"sync"
	"time"
)

// Routing keys on the topic exchange.
const (
	ApplicationFiled    = "application.filed"
	ApplicationResolved = "application.resolved"
	SlotBooked          = "slot.booked"
)

type ApplicationFiledEvent struct {
	ApplicationID string    `json:"application_id"`
	UserID        string    `json:"user_id"`
	TrainerID     string    `json:"trainer_id"`
	Email         string    `json:"email"`
	ApplyDate     time.Time `json:"apply_date"`
}

type ApplicationResolvedEvent struct {
	ApplicationID string    `json:"application_id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	Feedback      string    `json:"feedback,omitempty"`
	ResolvedAt    time.Time `json:"resolved_at"`
}

type SlotBookedEvent struct {
	PaymentID     string    `json:"payment_id"`
	TrainerID     string    `json:"trainer_id"`
	ClassID       string    `json:"class_id"`
	SlotID        string    `json:"slot_id"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}

// Publisher emits domain events after the owning transaction commits.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                                   { return nil }

// Published is one event captured by Recorder.
type Published struct {
	Key     string
	Payload any
}

// Recorder keeps events in memory for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Published
}

func (r *Recorder) PublishJSON(_ context.Context, key string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Published{Key: key, Payload: v})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Published, len(r.events))
	copy(out, r.events)
	return out
}

// Keys returns the routing keys in publish order.
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.events))
	for _, e := range r.events {
		keys = append(keys, e.Key)
	}
	return keys
}
