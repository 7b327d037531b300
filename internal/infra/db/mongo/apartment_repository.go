package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainapartment "bookify/internal/domain/apartment"
	"bookify/internal/domain/shared/money"
	"bookify/internal/domain/shared/result"
)

// ApartmentRepository persists apartments in the agg_apartment collection.
type ApartmentRepository struct {
	col *mongo.Collection
}

func NewApartmentRepository(db *mongo.Database) *ApartmentRepository {
	return &ApartmentRepository{col: db.Collection("agg_apartment")}
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id domainapartment.ID) result.Result[*domainapartment.Apartment] {
	var doc apartmentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result.Failure[*domainapartment.Apartment](domainapartment.NotFound(id))
		}
		return result.Failure[*domainapartment.Apartment](storageError(err))
	}
	ap, err := doc.toAggregate()
	if err != nil {
		return result.Failure[*domainapartment.Apartment](storageError(err))
	}
	return result.Success(ap)
}

func (r *ApartmentRepository) Save(ctx context.Context, ap *domainapartment.Apartment) result.Result[result.Unit] {
	doc := newApartmentDocument(ap)
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts); err != nil {
		return result.Failure[result.Unit](storageError(err))
	}
	return result.Ok()
}

type apartmentDocument struct {
	ID           string   `bson:"_id"`
	Street       string   `bson:"street"`
	City         string   `bson:"city"`
	State        string   `bson:"state"`
	Country      string   `bson:"country"`
	PostalCode   string   `bson:"postal_code"`
	Name         string   `bson:"name"`
	Description  string   `bson:"description"`
	Price        string   `bson:"price"`
	CleaningFee  string   `bson:"cleaning_fee"`
	Currency     string   `bson:"currency"`
	Amenities    []string `bson:"amenities"`
	LastBookedOn *int64   `bson:"last_booked_on,omitempty"`
}

func newApartmentDocument(ap *domainapartment.Apartment) apartmentDocument {
	amenities := make([]string, 0, len(ap.Amenities))
	for _, a := range ap.Amenities {
		amenities = append(amenities, string(a))
	}
	return apartmentDocument{
		ID:           string(ap.ID),
		Street:       ap.Address.Street,
		City:         ap.Address.City,
		State:        ap.Address.State,
		Country:      ap.Address.Country,
		PostalCode:   ap.Address.PostalCode,
		Name:         ap.Name.Value,
		Description:  ap.Description.Value,
		Price:        ap.Price.Amount.String(),
		CleaningFee:  ap.CleaningFee.Amount.String(),
		Currency:     ap.Price.Currency.Code(),
		Amenities:    amenities,
		LastBookedOn: optionalMillis(ap.LastBookedOn),
	}
}

func (doc apartmentDocument) toAggregate() (*domainapartment.Apartment, error) {
	currency, err := money.FromCode(doc.Currency)
	if err != nil {
		return nil, err
	}
	address, err := domainapartment.NewAddress(doc.Street, doc.City, doc.State, doc.Country, doc.PostalCode)
	if err != nil {
		return nil, err
	}
	name, err := domainapartment.NewName(doc.Name)
	if err != nil {
		return nil, err
	}
	description, err := domainapartment.NewDescription(doc.Description)
	if err != nil {
		return nil, err
	}
	price, err := moneyFrom(doc.Price, currency)
	if err != nil {
		return nil, err
	}
	cleaningFee, err := moneyFrom(doc.CleaningFee, currency)
	if err != nil {
		return nil, err
	}
	amenities := make([]domainapartment.Amenity, 0, len(doc.Amenities))
	for _, a := range doc.Amenities {
		amenities = append(amenities, domainapartment.Amenity(a))
	}
	ap, err := domainapartment.New(domainapartment.CreateParams{
		ID:          domainapartment.ID(doc.ID),
		Address:     address,
		Name:        name,
		Description: description,
		CleaningFee: cleaningFee,
		Price:       price,
		Amenities:   amenities,
	})
	if err != nil {
		return nil, err
	}
	if doc.LastBookedOn != nil {
		t := time.UnixMilli(*doc.LastBookedOn).UTC()
		ap.LastBookedOn = &t
	}
	return ap, nil
}

var _ domainapartment.Repository = (*ApartmentRepository)(nil)
