// Package outbox captures raised domain events for publish-after-save
// delivery to external consumers.
package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bookify/internal/domain/shared/events"
)

// EventRecord is the persisted form of a domain event awaiting publication.
type EventRecord struct {
	ID         string
	Name       string
	Aggregate  string
	Payload    []byte
	OccurredAt time.Time
	Headers    map[string]string
}

// Outbox stores event records inside the use case's save path.
type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
}

// EventEncoder turns a domain event into a persistable record.
type EventEncoder interface {
	Encode(event events.DomainEvent) (EventRecord, error)
}

// JSONEventEncoder serializes the event struct as its payload.
type JSONEventEncoder struct{}

func (JSONEventEncoder) Encode(event events.DomainEvent) (EventRecord, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return EventRecord{}, err
	}
	return EventRecord{
		ID:         uuid.NewString(),
		Name:       event.EventName(),
		Aggregate:  event.AggregateID(),
		Payload:    payload,
		OccurredAt: event.OccurredAt(),
	}, nil
}

// RecordDomainEvents encodes and stores every raised event, in order.
func RecordDomainEvents(ctx context.Context, box Outbox, enc EventEncoder, raised []events.DomainEvent) error {
	for _, event := range raised {
		record, err := enc.Encode(event)
		if err != nil {
			return err
		}
		if err := box.Add(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
