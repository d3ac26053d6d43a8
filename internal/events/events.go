package events

import (
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"
)

const (
	ListingSubmitted = "listing.submitted"
	ListingReviewed  = "listing.reviewed"
)

// ListingEvent is the payload of listing.* subjects.
type ListingEvent struct {
	ListingID string `json:"listing_id"`
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
	Size      string `json:"size"`
	Status    string `json:"status"`
	At        string `json:"at"`
}

// Publisher emits domain events. Publishing is fire-and-forget.
type Publisher interface {
	Publish(subject string, v any) error
}

type NATS struct{ nc *nats.Conn }

func Connect(url string) (*NATS, error) {
	nc, err := nats.Connect(url, nats.Name("lascala"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, err
	}
	return &NATS{nc: nc}, nil
}

func (n *NATS) Publish(subject string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return n.nc.Publish(subject, b)
}

func (n *NATS) Close() {
	_ = n.nc.Drain()
}

type Nop struct{}

func (Nop) Publish(string, any) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
}

type Recorded struct {
	Subject string
	Payload any
}

func (r *Recorder) Publish(subject string, v any) error {
	r.mu.Lock()
	r.Events = append(r.Events, Recorded{Subject: subject, Payload: v})
	r.mu.Unlock()
	return nil
}

// Subjects lists published subjects in order.
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Subject
	}
	return out
}
