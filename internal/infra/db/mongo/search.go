package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainapartment "bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/result"
)

// ApartmentSearch finds apartments free for a date range by excluding the
// ones with an active overlapping booking.
type ApartmentSearch struct {
	apartments *mongo.Collection
	bookings   *mongo.Collection
}

func NewApartmentSearch(db *mongo.Database) *ApartmentSearch {
	return &ApartmentSearch{
		apartments: db.Collection("agg_apartment"),
		bookings:   db.Collection("agg_booking"),
	}
}

func (s *ApartmentSearch) Search(ctx context.Context, duration daterange.DateRange) result.Result[[]*domainapartment.Apartment] {
	statuses := make([]string, 0, len(domainbooking.ActiveStatuses))
	for _, status := range domainbooking.ActiveStatuses {
		statuses = append(statuses, string(status))
	}
	booked, err := s.bookings.Distinct(ctx, "apartment_id", bson.M{
		"status": bson.M{"$in": statuses},
		"start":  bson.M{"$lt": duration.End.UnixMilli()},
		"end":    bson.M{"$gt": duration.Start.UnixMilli()},
	})
	if err != nil {
		return result.Failure[[]*domainapartment.Apartment](storageError(err))
	}

	filter := bson.M{}
	if len(booked) > 0 {
		filter["_id"] = bson.M{"$nin": booked}
	}
	cursor, err := s.apartments.Find(ctx, filter)
	if err != nil {
		return result.Failure[[]*domainapartment.Apartment](storageError(err))
	}
	defer cursor.Close(ctx)

	apartments := make([]*domainapartment.Apartment, 0)
	for cursor.Next(ctx) {
		var doc apartmentDocument
		if err := cursor.Decode(&doc); err != nil {
			return result.Failure[[]*domainapartment.Apartment](storageError(err))
		}
		ap, err := doc.toAggregate()
		if err != nil {
			return result.Failure[[]*domainapartment.Apartment](storageError(err))
		}
		apartments = append(apartments, ap)
	}
	if err := cursor.Err(); err != nil {
		return result.Failure[[]*domainapartment.Apartment](storageError(err))
	}
	return result.Success(apartments)
}
