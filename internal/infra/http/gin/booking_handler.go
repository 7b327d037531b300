package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"bookify/internal/app/commands"
	bookingapp "bookify/internal/app/handlers/booking"
	"bookify/internal/app/queries"
	"bookify/internal/domain/shared/result"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type reserveBookingRequest struct {
	ApartmentID string    `json:"apartment_id"`
	UserID      string    `json:"user_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func (h BookingHandler) Reserve(c *gin.Context) {
	var req reserveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	cmd := bookingapp.ReserveBookingCommand{
		ApartmentID:     req.ApartmentID,
		UserID:          req.UserID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	res, err := commands.Dispatch[result.Result[bookingapp.ReserveBookingResult]](c.Request.Context(), h.Commands, cmd)
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

func (h BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, bookingapp.ConfirmBookingCommand{BookingID: c.Param("id")})
}

func (h BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, bookingapp.CancelBookingCommand{BookingID: c.Param("id")})
}

func (h BookingHandler) Complete(c *gin.Context) {
	h.transition(c, bookingapp.CompleteBookingCommand{BookingID: c.Param("id")})
}

func (h BookingHandler) Reject(c *gin.Context) {
	h.transition(c, bookingapp.RejectBookingCommand{BookingID: c.Param("id")})
}

func (h BookingHandler) transition(c *gin.Context, cmd commands.Command) {
	res, err := commands.Dispatch[result.Result[result.Unit]](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	if res.IsFailure() {
		writeFailure(c, res.Err())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h BookingHandler) Get(c *gin.Context) {
	q := bookingapp.GetBookingQuery{BookingID: c.Param("id")}
	res, err := queries.Ask[result.Result[bookingapp.BookingView]](c.Request.Context(), h.Queries, q)
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

var _ BookingHTTP = BookingHandler{}
