package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookify/internal/domain/shared/result"
	domainuser "bookify/internal/domain/user"
)

// UserRepository persists users in the agg_user collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("agg_user")}
}

func (r *UserRepository) GetByID(ctx context.Context, id domainuser.ID) result.Result[*domainuser.User] {
	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result.Failure[*domainuser.User](domainuser.NotFound(id))
		}
		return result.Failure[*domainuser.User](storageError(err))
	}
	u, err := doc.toAggregate()
	if err != nil {
		return result.Failure[*domainuser.User](storageError(err))
	}
	return result.Success(u)
}

func (r *UserRepository) Add(ctx context.Context, u *domainuser.User) result.Result[result.Unit] {
	if _, err := r.col.InsertOne(ctx, newUserDocument(u)); err != nil {
		return result.Failure[result.Unit](storageError(err))
	}
	return result.Ok()
}

type userDocument struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Email     string `bson:"email"`
}

func newUserDocument(u *domainuser.User) userDocument {
	return userDocument{
		ID:        string(u.ID),
		FirstName: u.FirstName.Value,
		LastName:  u.LastName.Value,
		Email:     u.Email.Value,
	}
}

func (doc userDocument) toAggregate() (*domainuser.User, error) {
	firstName, err := domainuser.NewFirstName(doc.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := domainuser.NewLastName(doc.LastName)
	if err != nil {
		return nil, err
	}
	email, err := domainuser.NewEmail(doc.Email)
	if err != nil {
		return nil, err
	}
	return &domainuser.User{
		ID:        domainuser.ID(doc.ID),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}, nil
}

var _ domainuser.Repository = (*UserRepository)(nil)
