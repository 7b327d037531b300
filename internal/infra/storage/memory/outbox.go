package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "bookify/internal/app/outbox"
	infraoutbox "bookify/internal/infra/outbox"
)

type outboxStatus string

const (
	outboxPending outboxStatus = "pending"
	outboxClaimed outboxStatus = "claimed"
	outboxSent    outboxStatus = "sent"
)

type outboxEntry struct {
	doc       infraoutbox.EventDocument
	status    outboxStatus
	claimedBy string
	notBefore time.Time
	lastError string
}

// Outbox is the in-memory event store shared by the use cases (Add) and the
// publish worker (Claim/MarkSent/MarkFailed).
type Outbox struct {
	mu      sync.Mutex
	entries []*outboxEntry
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, &outboxEntry{
		doc: infraoutbox.EventDocument{
			ID:         record.ID,
			Name:       record.Name,
			Aggregate:  record.Aggregate,
			Payload:    record.Payload,
			OccurredAt: record.OccurredAt,
			Headers:    record.Headers,
		},
		status: outboxPending,
	})
	return nil
}

func (o *Outbox) Claim(ctx context.Context, workerID string) (*infraoutbox.EventDocument, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	for _, entry := range o.entries {
		if entry.status != outboxPending || entry.notBefore.After(now) {
			continue
		}
		entry.status = outboxClaimed
		entry.claimedBy = workerID
		doc := entry.doc
		return &doc, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if entry := o.find(id); entry != nil {
		entry.status = outboxSent
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, nextRetry time.Time, reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if entry := o.find(id); entry != nil {
		entry.status = outboxPending
		entry.notBefore = nextRetry
		entry.lastError = reason
		entry.doc.Attempts++
	}
	return nil
}

// Pending reports how many records still await publication.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	count := 0
	for _, entry := range o.entries {
		if entry.status != outboxSent {
			count++
		}
	}
	return count
}

func (o *Outbox) find(id string) *outboxEntry {
	for _, entry := range o.entries {
		if entry.doc.ID == id {
			return entry
		}
	}
	return nil
}

var (
	_ appoutbox.Outbox  = (*Outbox)(nil)
	_ infraoutbox.Store = (*Outbox)(nil)
)
