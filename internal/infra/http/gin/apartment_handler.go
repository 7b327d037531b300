package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	apartmentapp "bookify/internal/app/handlers/apartment"
	"bookify/internal/app/queries"
	"bookify/internal/domain/shared/result"
)

type ApartmentHandler struct {
	Queries queries.Bus
}

func (h ApartmentHandler) Get(c *gin.Context) {
	q := apartmentapp.GetApartmentQuery{ApartmentID: c.Param("id")}
	res, err := queries.Ask[result.Result[apartmentapp.ApartmentView]](c.Request.Context(), h.Queries, q)
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

func (h ApartmentHandler) Search(c *gin.Context) {
	start, err := parseDateParam(c.Query("start_date"))
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	end, err := parseDateParam(c.Query("end_date"))
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	q := apartmentapp.SearchApartmentsQuery{StartDate: start, EndDate: end}
	res, err := queries.Ask[result.Result[[]apartmentapp.ApartmentView]](c.Request.Context(), h.Queries, q)
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

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

var _ ApartmentHTTP = ApartmentHandler{}
