package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainapartment "bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	domainreview "bookify/internal/domain/review"
	"bookify/internal/domain/shared/result"
	domainuser "bookify/internal/domain/user"
)

// ReviewRepository persists reviews in the agg_review collection.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection("agg_review")}
}

func (r *ReviewRepository) Add(ctx context.Context, review *domainreview.Review) result.Result[result.Unit] {
	if _, err := r.col.InsertOne(ctx, newReviewDocument(review)); err != nil {
		return result.Failure[result.Unit](storageError(err))
	}
	return result.Ok()
}

func (r *ReviewRepository) ListByApartment(ctx context.Context, id domainapartment.ID) result.Result[[]*domainreview.Review] {
	opts := options.Find().SetSort(bson.D{{Key: "created_on", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"apartment_id": string(id)}, opts)
	if err != nil {
		return result.Failure[[]*domainreview.Review](storageError(err))
	}
	defer cursor.Close(ctx)

	reviews := make([]*domainreview.Review, 0)
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return result.Failure[[]*domainreview.Review](storageError(err))
		}
		review, err := doc.toAggregate()
		if err != nil {
			return result.Failure[[]*domainreview.Review](storageError(err))
		}
		reviews = append(reviews, review)
	}
	if err := cursor.Err(); err != nil {
		return result.Failure[[]*domainreview.Review](storageError(err))
	}
	return result.Success(reviews)
}

type reviewDocument struct {
	ID          string `bson:"_id"`
	ApartmentID string `bson:"apartment_id"`
	BookingID   string `bson:"booking_id"`
	UserID      string `bson:"user_id"`
	Rating      int    `bson:"rating"`
	Comment     string `bson:"comment"`
	CreatedOn   int64  `bson:"created_on"`
}

func newReviewDocument(review *domainreview.Review) reviewDocument {
	return reviewDocument{
		ID:          string(review.ID),
		ApartmentID: string(review.ApartmentID),
		BookingID:   string(review.BookingID),
		UserID:      string(review.UserID),
		Rating:      review.Rating.Value,
		Comment:     review.Comment.Value,
		CreatedOn:   review.CreatedOn.UnixMilli(),
	}
}

func (doc reviewDocument) toAggregate() (*domainreview.Review, error) {
	rating, err := domainreview.NewRating(doc.Rating)
	if err != nil {
		return nil, err
	}
	comment, err := domainreview.NewComment(doc.Comment)
	if err != nil {
		return nil, err
	}
	return &domainreview.Review{
		ID:          domainreview.ID(doc.ID),
		ApartmentID: domainapartment.ID(doc.ApartmentID),
		BookingID:   domainbooking.ID(doc.BookingID),
		UserID:      domainuser.ID(doc.UserID),
		Rating:      rating,
		Comment:     comment,
		CreatedOn:   time.UnixMilli(doc.CreatedOn).UTC(),
	}, nil
}

var _ domainreview.Repository = (*ReviewRepository)(nil)
