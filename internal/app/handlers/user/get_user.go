package user

import (
	"context"

	"bookify/internal/app/queries"
	"bookify/internal/domain/shared/result"
	domainuser "bookify/internal/domain/user"
)

const getUserKey = "user.get"

type GetUserQuery struct{ UserID string }

func (q GetUserQuery) Key() string { return getUserKey }

type UserView struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type GetUserHandler struct {
	Users domainuser.Repository
}

func (h *GetUserHandler) Handle(ctx context.Context, q queries.Query) (any, error) {
	query, ok := q.(GetUserQuery)
	if !ok {
		return nil, queries.ErrUnexpectedQuery
	}

	loaded := h.Users.GetByID(ctx, domainuser.ID(query.UserID))
	if loaded.IsFailure() {
		return result.Failure[UserView](loaded.Err()), nil
	}
	u := loaded.Value()
	return result.Success(UserView{
		ID:        string(u.ID),
		FirstName: u.FirstName.Value,
		LastName:  u.LastName.Value,
		Email:     u.Email.Value,
	}), nil
}
