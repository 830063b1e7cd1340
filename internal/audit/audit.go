// Package audit defines the transport-agnostic audit events emitted by the
// registry's domain services, plus the Publisher port they write to. Sinks
// (memory store, Kafka) live in subpackages or alongside; services only see
// the interface.
package audit

import (
	"context"
	"time"
)

// Event captures one administrative action on the registry. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	Action        string    `json:"action"`
	ApplicationID string    `json:"application_id,omitempty"`
	SubjectID     string    `json:"subject_id,omitempty"`
	// ActorID is the portal operator who performed the action.
	ActorID   string `json:"actor_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Action names. The cascade event carries the full deleted id list in Detail
// because a printed legal record must account for every removed claimant.
const (
	EventHeirCreated        = "heir_created"
	EventHeirUpdated        = "heir_updated"
	EventHeirDeleted        = "heir_deleted"
	EventApplicationCreated = "application_created"
	EventApplicationDecided = "application_status_changed"
)

// Publisher is the port services emit through.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
