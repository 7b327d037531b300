package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bookify/internal/domain/shared/result"
)

func failureStatus(e result.Error) int {
	switch e.Code {
	case "Apartment.NotFound", "User.NotFound", "Booking.NotFound":
		return http.StatusNotFound
	case "Booking.Overlap", "Booking.NotReserved", "Booking.NotConfirmed",
		"Booking.AlreadyStarted", "Review.NotEligible":
		return http.StatusConflict
	case "Storage.Unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func writeFailure(c *gin.Context, e result.Error) {
	body := gin.H{"code": e.Code, "message": e.Message}
	if len(e.Data) > 0 {
		body["data"] = e.Data
	}
	c.JSON(failureStatus(e), gin.H{"error": body})
}

func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
}
