package user

import (
	"context"

	"bookify/internal/app/commands"
	"bookify/internal/app/outbox"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/result"
	domainuser "bookify/internal/domain/user"
)

const registerUserKey = "user.register"

type RegisterUserCommand struct {
	FirstName string
	LastName  string
	Email     string
}

func (c RegisterUserCommand) Key() string { return registerUserKey }

type RegisterUserResult struct {
	UserID string `json:"user_id"`
}

type RegisterUserHandler struct {
	Users   domainuser.Repository
	Clock   clock.Clock
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
}

func (h *RegisterUserHandler) Handle(ctx context.Context, cmd commands.Command) (any, error) {
	c, ok := cmd.(RegisterUserCommand)
	if !ok {
		return nil, commands.ErrUnexpectedCommand
	}

	firstName, err := domainuser.NewFirstName(c.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := domainuser.NewLastName(c.LastName)
	if err != nil {
		return nil, err
	}
	email, err := domainuser.NewEmail(c.Email)
	if err != nil {
		return nil, err
	}

	u, err := domainuser.Create(firstName, lastName, email, h.Clock.Now())
	if err != nil {
		return nil, err
	}

	if added := h.Users.Add(ctx, u); added.IsFailure() {
		return result.Failure[RegisterUserResult](added.Err()), nil
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, u.DomainEvents()); err != nil {
		return nil, err
	}
	u.ClearDomainEvents()

	return result.Success(RegisterUserResult{UserID: string(u.ID)}), nil
}
