// Package events provides the domain-event recording capability aggregates
// compose. The pending list is owner-exclusive: it can only grow through
// Record and is read back as a snapshot.
package events

import "time"

// DomainEvent is an immutable fact raised by an aggregate state change.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventRecorder holds the ordered pending events of a single aggregate.
// The zero value is ready to use.
type EventRecorder struct {
	pending []DomainEvent
}

// Record appends an event to the pending list.
func (r *EventRecorder) Record(event DomainEvent) {
	r.pending = append(r.pending, event)
}

// DomainEvents returns a snapshot of the pending events.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.pending))
	copy(out, r.pending)
	return out
}

// ClearDomainEvents empties the pending list.
func (r *EventRecorder) ClearDomainEvents() {
	r.pending = nil
}
