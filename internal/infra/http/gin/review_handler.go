package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bookify/internal/app/commands"
	reviewapp "bookify/internal/app/handlers/review"
	"bookify/internal/app/queries"
	"bookify/internal/domain/shared/result"
)

type ReviewHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type submitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h ReviewHandler) Submit(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	cmd := reviewapp.SubmitReviewCommand{
		BookingID:       c.Param("id"),
		Rating:          req.Rating,
		Comment:         req.Comment,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	res, err := commands.Dispatch[result.Result[reviewapp.SubmitReviewResult]](c.Request.Context(), h.Commands, cmd)
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

func (h ReviewHandler) List(c *gin.Context) {
	q := reviewapp.ListReviewsQuery{ApartmentID: c.Param("id")}
	res, err := queries.Ask[result.Result[[]reviewapp.ReviewView]](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	if res.IsFailure() {
		writeFailure(c, res.Err())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res.Value()})
}

var _ ReviewHTTP = ReviewHandler{}
