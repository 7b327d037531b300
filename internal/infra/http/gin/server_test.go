package ginserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookify/internal/app/commands"
	apartmentapp "bookify/internal/app/handlers/apartment"
	bookingapp "bookify/internal/app/handlers/booking"
	reviewapp "bookify/internal/app/handlers/review"
	userapp "bookify/internal/app/handlers/user"
	"bookify/internal/app/middleware"
	appoutbox "bookify/internal/app/outbox"
	"bookify/internal/app/queries"
	"bookify/internal/domain/apartment"
	"bookify/internal/domain/pricing"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/money"
	"bookify/internal/infra/config"
	ginserver "bookify/internal/infra/http/gin"
	"bookify/internal/infra/obs"
	"bookify/internal/infra/storage/memory"
)

var serverTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	handler   http.Handler
	apartment *apartment.Apartment
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	apartments := memory.NewApartmentRepository()
	users := memory.NewUserRepository()
	bookings := memory.NewBookingRepository()
	reviews := memory.NewReviewRepository()
	box := memory.NewOutbox()
	fixedClock := clock.Fixed{Instant: serverTime}
	encoder := appoutbox.JSONEventEncoder{}

	addr, err := apartment.NewAddress("9 Ocean Dr", "Faro", "Algarve", "Portugal", "8000")
	require.NoError(t, err)
	name, err := apartment.NewName("Ocean Flat")
	require.NoError(t, err)
	desc, err := apartment.NewDescription("sea view studio")
	require.NoError(t, err)
	ap, err := apartment.New(apartment.CreateParams{
		ID:          apartment.NewID(),
		Address:     addr,
		Name:        name,
		Description: desc,
		CleaningFee: money.Must(25, money.EUR),
		Price:       money.Must(100, money.EUR),
	})
	require.NoError(t, err)
	require.True(t, apartments.Save(context.Background(), ap).IsSuccess())

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ReserveBookingCommand{}.Key(), &bookingapp.ReserveBookingHandler{
		Apartments: apartments,
		Users:      users,
		Bookings:   bookings,
		Pricing:    pricing.NewService(nil),
		Clock:      fixedClock,
		Outbox:     box,
		Encoder:    encoder,
	})
	transitions := &bookingapp.TransitionHandler{Bookings: bookings, Clock: fixedClock, Outbox: box, Encoder: encoder}
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, bookingapp.CompleteBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, bookingapp.RejectBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, userapp.RegisterUserCommand{}.Key(), &userapp.RegisterUserHandler{
		Users: users, Clock: fixedClock, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, reviewapp.SubmitReviewCommand{}.Key(), &reviewapp.SubmitReviewHandler{
		Bookings: bookings, Reviews: reviews, Clock: fixedClock, Outbox: box, Encoder: encoder,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{Bookings: bookings})
	queries.RegisterHandler(queryBus, userapp.GetUserQuery{}.Key(), &userapp.GetUserHandler{Users: users})
	queries.RegisterHandler(queryBus, apartmentapp.GetApartmentQuery{}.Key(), &apartmentapp.GetApartmentHandler{Apartments: apartments})
	queries.RegisterHandler(queryBus, apartmentapp.SearchApartmentsQuery{}.Key(), &apartmentapp.SearchApartmentsHandler{
		Apartments: &memory.ApartmentSearch{Apartments: apartments, Bookings: bookings},
	})
	queries.RegisterHandler(queryBus, reviewapp.ListReviewsQuery{}.Key(), &reviewapp.ListReviewsHandler{Reviews: reviews})

	wrappedCommands := middleware.ChainCommands(commandBus, middleware.Idempotency(memory.NewIdempotencyStore(time.Minute)))

	server := ginserver.NewServer(
		config.Config{Env: "test", HTTPAddr: ":0"},
		obs.Middleware{},
		obs.HealthHandlers{},
		ginserver.Handlers{
			User:      ginserver.UserHandler{Commands: wrappedCommands, Queries: queryBus},
			Booking:   ginserver.BookingHandler{Commands: wrappedCommands, Queries: queryBus},
			Apartment: ginserver.ApartmentHandler{Queries: queryBus},
			Review:    ginserver.ReviewHandler{Commands: wrappedCommands, Queries: queryBus},
		},
	)
	return testServer{handler: server.Handler, apartment: ap}
}

func (s testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s testServer) registerUser(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/users", map[string]string{
		"first_name": "Linus",
		"last_name":  "Sebastian",
		"email":      "linus@example.com",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.UserID
}

func (s testServer) reserve(t *testing.T, userID string, headers map[string]string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
		"apartment_id": string(s.apartment.ID),
		"user_id":      userID,
		"start_date":   serverTime.AddDate(0, 0, 7).Format(time.RFC3339),
		"end_date":     serverTime.AddDate(0, 0, 12).Format(time.RFC3339),
	}, headers)
	var out struct {
		BookingID string `json:"booking_id"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out.BookingID
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/livez", nil, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/readyz", nil, nil).Code)
}

func TestReserveConfirmAndFetchBooking(t *testing.T) {
	s := newTestServer(t)
	userID := s.registerUser(t)

	rec, bookingID := s.reserve(t, userID, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotEmpty(t, bookingID)

	confirm := s.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/confirm", nil, nil)
	assert.Equal(t, http.StatusNoContent, confirm.Code)

	get := s.do(t, http.MethodGet, "/api/v1/bookings/"+bookingID, nil, nil)
	require.Equal(t, http.StatusOK, get.Code)
	var view struct {
		Status     string `json:"status"`
		TotalPrice string `json:"total_price"`
		Currency   string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &view))
	assert.Equal(t, "CONFIRMED", view.Status)
	assert.Equal(t, "525", view.TotalPrice)
	assert.Equal(t, "EUR", view.Currency)
}

func TestReserveConflictReturns409(t *testing.T) {
	s := newTestServer(t)
	userID := s.registerUser(t)

	first, _ := s.reserve(t, userID, nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second, _ := s.reserve(t, userID, nil)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Booking.Overlap")
}

func TestReserveIdempotencyKeyReturnsSameBooking(t *testing.T) {
	s := newTestServer(t)
	userID := s.registerUser(t)
	headers := map[string]string{"Idempotency-Key": "retry-1"}

	first, firstID := s.reserve(t, userID, headers)
	require.Equal(t, http.StatusCreated, first.Code)

	second, secondID := s.reserve(t, userID, headers)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, firstID, secondID)
}

func TestUnknownBookingReturns404(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/bookings/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking.NotFound")
}

func TestSearchApartmentsExcludesReserved(t *testing.T) {
	s := newTestServer(t)
	userID := s.registerUser(t)

	searchPath := fmt.Sprintf("/api/v1/apartments?start_date=%s&end_date=%s",
		serverTime.AddDate(0, 0, 8).Format(time.DateOnly),
		serverTime.AddDate(0, 0, 10).Format(time.DateOnly))

	before := s.do(t, http.MethodGet, searchPath, nil, nil)
	require.Equal(t, http.StatusOK, before.Code)
	assert.Contains(t, before.Body.String(), string(s.apartment.ID))

	rec, _ := s.reserve(t, userID, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	after := s.do(t, http.MethodGet, searchPath, nil, nil)
	require.Equal(t, http.StatusOK, after.Code)
	assert.NotContains(t, after.Body.String(), string(s.apartment.ID))
}

func TestReviewLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	userID := s.registerUser(t)

	rec, bookingID := s.reserve(t, userID, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	early := s.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/reviews", map[string]any{
		"rating": 5, "comment": "too soon",
	}, nil)
	assert.Equal(t, http.StatusConflict, early.Code)
	assert.Contains(t, early.Body.String(), "Review.NotEligible")

	complete := s.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/complete", nil, nil)
	require.Equal(t, http.StatusNoContent, complete.Code)

	submitted := s.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/reviews", map[string]any{
		"rating": 5, "comment": "flawless stay",
	}, nil)
	require.Equal(t, http.StatusCreated, submitted.Code, submitted.Body.String())

	list := s.do(t, http.MethodGet, "/api/v1/apartments/"+string(s.apartment.ID)+"/reviews", nil, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "flawless stay")
}
