package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	appoutbox "bookify/internal/app/outbox"
	infraoutbox "bookify/internal/infra/outbox"
)

// Outbox stores pending domain events in the outbox_events collection. Claim
// uses an atomic find-and-update so concurrent workers never share a record.
type Outbox struct {
	col *mongo.Collection
}

func NewOutbox(db *mongo.Database) *Outbox {
	return &Outbox{col: db.Collection("outbox_events")}
}

type outboxDocument struct {
	ID         string            `bson:"_id"`
	Name       string            `bson:"name"`
	Aggregate  string            `bson:"aggregate"`
	Payload    []byte            `bson:"payload"`
	OccurredAt int64             `bson:"occurred_at"`
	Headers    map[string]string `bson:"headers,omitempty"`
	Status     string            `bson:"status"`
	ClaimedBy  string            `bson:"claimed_by,omitempty"`
	NotBefore  int64             `bson:"not_before"`
	Attempts   int               `bson:"attempts"`
	LastError  string            `bson:"last_error,omitempty"`
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	_, err := o.col.InsertOne(ctx, outboxDocument{
		ID:         record.ID,
		Name:       record.Name,
		Aggregate:  record.Aggregate,
		Payload:    record.Payload,
		OccurredAt: record.OccurredAt.UnixMilli(),
		Headers:    record.Headers,
		Status:     "pending",
	})
	return err
}

func (o *Outbox) Claim(ctx context.Context, workerID string) (*infraoutbox.EventDocument, error) {
	now := time.Now()
	filter := bson.M{
		"status":     "pending",
		"not_before": bson.M{"$lte": now.UnixMilli()},
	}
	update := bson.M{"$set": bson.M{
		"status":     "claimed",
		"claimed_by": workerID,
	}}
	var doc outboxDocument
	err := o.col.FindOneAndUpdate(ctx, filter, update).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &infraoutbox.EventDocument{
		ID:         doc.ID,
		Name:       doc.Name,
		Aggregate:  doc.Aggregate,
		Payload:    doc.Payload,
		OccurredAt: time.UnixMilli(doc.OccurredAt).UTC(),
		Headers:    doc.Headers,
		Attempts:   doc.Attempts,
	}, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	_, err := o.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": "sent"}})
	return err
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, nextRetry time.Time, reason string) error {
	_, err := o.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     "pending",
			"not_before": nextRetry.UnixMilli(),
			"last_error": reason,
		},
		"$inc": bson.M{"attempts": 1},
	})
	return err
}

var (
	_ appoutbox.Outbox  = (*Outbox)(nil)
	_ infraoutbox.Store = (*Outbox)(nil)
)
