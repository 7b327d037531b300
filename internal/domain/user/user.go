package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookify/internal/domain/shared/events"
	"bookify/internal/domain/shared/result"
)

var (
	ErrFirstNameBlank = errors.New("user: first name cannot be blank")
	ErrLastNameBlank  = errors.New("user: last name cannot be blank")
	ErrEmailBlank     = errors.New("user: email cannot be blank")
)

type ID string

// NewID returns a fresh user identity.
func NewID() ID { return ID(uuid.NewString()) }

type FirstName struct {
	Value string
}

func NewFirstName(value string) (FirstName, error) {
	if strings.TrimSpace(value) == "" {
		return FirstName{}, ErrFirstNameBlank
	}
	return FirstName{Value: value}, nil
}

type LastName struct {
	Value string
}

func NewLastName(value string) (LastName, error) {
	if strings.TrimSpace(value) == "" {
		return LastName{}, ErrLastNameBlank
	}
	return LastName{Value: value}, nil
}

type Email struct {
	Value string
}

func NewEmail(value string) (Email, error) {
	if strings.TrimSpace(value) == "" {
		return Email{}, ErrEmailBlank
	}
	return Email{Value: value}, nil
}

// User is a booking customer. All fields are fixed at construction.
type User struct {
	ID        ID
	FirstName FirstName
	LastName  LastName
	Email     Email
	events.EventRecorder
}

// Create is the only construction path; it assigns a fresh identity and
// raises Created.
func Create(firstName FirstName, lastName LastName, email Email, now time.Time) (*User, error) {
	if firstName.Value == "" {
		return nil, ErrFirstNameBlank
	}
	if lastName.Value == "" {
		return nil, ErrLastNameBlank
	}
	if email.Value == "" {
		return nil, ErrEmailBlank
	}
	u := &User{
		ID:        NewID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	u.Record(Created{UserID: u.ID, At: now.UTC()})
	return u, nil
}

// Created is raised once per new user.
type Created struct {
	UserID ID
	At     time.Time
}

func (e Created) EventName() string     { return "user.created" }
func (e Created) AggregateID() string   { return string(e.UserID) }
func (e Created) OccurredAt() time.Time { return e.At }

// Repository is the persistence contract the use cases depend on.
type Repository interface {
	GetByID(ctx context.Context, id ID) result.Result[*User]
	Add(ctx context.Context, user *User) result.Result[result.Unit]
}

// NotFound is the coded failure for a missing user.
func NotFound(id ID) result.Error {
	return result.MustError("User.NotFound", "The user was not found.",
		map[string]any{"userId": string(id)})
}
