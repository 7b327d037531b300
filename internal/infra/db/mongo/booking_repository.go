package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainapartment "bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/money"
	"bookify/internal/domain/shared/result"
	domainuser "bookify/internal/domain/user"
)

// BookingRepository persists bookings in the agg_booking collection.
type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) Add(ctx context.Context, b *domainbooking.Booking) result.Result[*domainbooking.Booking] {
	doc := newBookingDocument(b)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return result.Failure[*domainbooking.Booking](storageError(err))
	}
	return result.Success(b)
}

func (r *BookingRepository) GetByID(ctx context.Context, id domainbooking.ID) result.Result[*domainbooking.Booking] {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result.Failure[*domainbooking.Booking](domainbooking.NotFound(id))
		}
		return result.Failure[*domainbooking.Booking](storageError(err))
	}
	b, err := doc.toAggregate()
	if err != nil {
		return result.Failure[*domainbooking.Booking](storageError(err))
	}
	return result.Success(b)
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) result.Result[result.Unit] {
	doc := newBookingDocument(b)
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts); err != nil {
		return result.Failure[result.Unit](storageError(err))
	}
	return result.Ok()
}

// IsOverlapping looks for an active booking of the apartment whose range
// shares at least one night with the requested one.
func (r *BookingRepository) IsOverlapping(ctx context.Context, ap *domainapartment.Apartment, duration daterange.DateRange) result.Result[*domainbooking.Booking] {
	statuses := make([]string, 0, len(domainbooking.ActiveStatuses))
	for _, s := range domainbooking.ActiveStatuses {
		statuses = append(statuses, string(s))
	}
	filter := bson.M{
		"apartment_id": string(ap.ID),
		"status":       bson.M{"$in": statuses},
		"start":        bson.M{"$lt": duration.End.UnixMilli()},
		"end":          bson.M{"$gt": duration.Start.UnixMilli()},
	}
	var doc bookingDocument
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return result.Success[*domainbooking.Booking](nil)
	}
	if err != nil {
		return result.Failure[*domainbooking.Booking](storageError(err))
	}
	return result.Failure[*domainbooking.Booking](domainbooking.Overlap(domainbooking.ID(doc.ID)))
}

type bookingDocument struct {
	ID                string `bson:"_id"`
	ApartmentID       string `bson:"apartment_id"`
	UserID            string `bson:"user_id"`
	Start             int64  `bson:"start"`
	End               int64  `bson:"end"`
	PriceForPeriod    string `bson:"price_for_period"`
	CleaningFee       string `bson:"cleaning_fee"`
	AmenitiesUpCharge string `bson:"amenities_up_charge"`
	TotalPrice        string `bson:"total_price"`
	Currency          string `bson:"currency"`
	Status            string `bson:"status"`
	CreatedOn         int64  `bson:"created_on"`
	ConfirmedOn       *int64 `bson:"confirmed_on,omitempty"`
	CancelledOn       *int64 `bson:"cancelled_on,omitempty"`
	CompletedOn       *int64 `bson:"completed_on,omitempty"`
	RejectedOn        *int64 `bson:"rejected_on,omitempty"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:                string(b.ID),
		ApartmentID:       string(b.ApartmentID),
		UserID:            string(b.UserID),
		Start:             b.Duration.Start.UnixMilli(),
		End:               b.Duration.End.UnixMilli(),
		PriceForPeriod:    b.PriceForPeriod.Amount.String(),
		CleaningFee:       b.CleaningFee.Amount.String(),
		AmenitiesUpCharge: b.AmenitiesUpCharge.Amount.String(),
		TotalPrice:        b.TotalPrice.Amount.String(),
		Currency:          b.TotalPrice.Currency.Code(),
		Status:            string(b.Status),
		CreatedOn:         b.CreatedOn.UnixMilli(),
		ConfirmedOn:       optionalMillis(b.ConfirmedOn),
		CancelledOn:       optionalMillis(b.CancelledOn),
		CompletedOn:       optionalMillis(b.CompletedOn),
		RejectedOn:        optionalMillis(b.RejectedOn),
	}
}

func (doc bookingDocument) toAggregate() (*domainbooking.Booking, error) {
	currency, err := money.FromCode(doc.Currency)
	if err != nil {
		return nil, err
	}
	duration, err := daterange.New(time.UnixMilli(doc.Start).UTC(), time.UnixMilli(doc.End).UTC())
	if err != nil {
		return nil, err
	}
	priceForPeriod, err := moneyFrom(doc.PriceForPeriod, currency)
	if err != nil {
		return nil, err
	}
	cleaningFee, err := moneyFrom(doc.CleaningFee, currency)
	if err != nil {
		return nil, err
	}
	upCharge, err := moneyFrom(doc.AmenitiesUpCharge, currency)
	if err != nil {
		return nil, err
	}
	total, err := moneyFrom(doc.TotalPrice, currency)
	if err != nil {
		return nil, err
	}
	return &domainbooking.Booking{
		ID:                domainbooking.ID(doc.ID),
		ApartmentID:       domainapartment.ID(doc.ApartmentID),
		UserID:            domainuser.ID(doc.UserID),
		Duration:          duration,
		PriceForPeriod:    priceForPeriod,
		CleaningFee:       cleaningFee,
		AmenitiesUpCharge: upCharge,
		TotalPrice:        total,
		Status:            domainbooking.Status(doc.Status),
		CreatedOn:         time.UnixMilli(doc.CreatedOn).UTC(),
		ConfirmedOn:       optionalTime(doc.ConfirmedOn),
		CancelledOn:       optionalTime(doc.CancelledOn),
		CompletedOn:       optionalTime(doc.CompletedOn),
		RejectedOn:        optionalTime(doc.RejectedOn),
	}, nil
}

func moneyFrom(amount string, currency money.Currency) (money.Money, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(dec, currency)
}

func optionalMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func optionalTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func storageError(err error) result.Error {
	return result.MustError("Storage.Unavailable", err.Error(), nil)
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
