package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bookify/internal/app/commands"
	userapp "bookify/internal/app/handlers/user"
	"bookify/internal/app/queries"
	"bookify/internal/domain/shared/result"
)

type UserHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type registerUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (h UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	cmd := userapp.RegisterUserCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	res, err := commands.Dispatch[result.Result[userapp.RegisterUserResult]](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	if res.IsFailure() {
		writeFailure(c, res.Err())
		return
	}
	c.JSON(http.StatusCreated, res.Value())
}

func (h UserHandler) Get(c *gin.Context) {
	q := userapp.GetUserQuery{UserID: c.Param("id")}
	res, err := queries.Ask[result.Result[userapp.UserView]](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	if res.IsFailure() {
		writeFailure(c, res.Err())
		return
	}
	c.JSON(http.StatusOK, res.Value())
}

var _ UserHTTP = UserHandler{}
