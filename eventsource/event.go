// Package eventsource provides an append-only event store for ledger
// operation streams, with in-memory and SQLite backends and optimistic
// concurrency on append.
package eventsource

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store errors.
var (
	ErrVersionConflict = errors.New("eventsource: version conflict on append")
	ErrStoreClosed     = errors.New("eventsource: store is closed")
)

// Event is one immutable entry in a stream.
type Event struct {
	// ID is a globally unique event identifier.
	ID string `json:"id"`

	// Stream is the stream this event belongs to.
	Stream string `json:"stream"`

	// Version is the zero-based position within the stream.
	Version int `json:"version"`

	// Type names the event.
	Type string `json:"type"`

	// Data is the JSON-encoded payload.
	Data json.RawMessage `json:"data"`

	// Timestamp is when the event was created.
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event with a fresh id and encoded payload.
// The version is assigned by the store on append.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload into v.
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}
