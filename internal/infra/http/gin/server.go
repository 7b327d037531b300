package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"bookify/internal/infra/config"
	"bookify/internal/infra/obs"
)

type UserHTTP interface {
	Register(c *gin.Context)
	Get(c *gin.Context)
}

type BookingHTTP interface {
	Reserve(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	Complete(c *gin.Context)
	Reject(c *gin.Context)
	Get(c *gin.Context)
}

type ApartmentHTTP interface {
	Get(c *gin.Context)
	Search(c *gin.Context)
}

type ReviewHTTP interface {
	Submit(c *gin.Context)
	List(c *gin.Context)
}

type Handlers struct {
	User      UserHTTP
	Booking   BookingHTTP
	Apartment ApartmentHTTP
	Review    ReviewHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.User != nil {
		api.POST("/users", h.User.Register)
		api.GET("/users/:id", h.User.Get)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Reserve)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/complete", h.Booking.Complete)
		api.POST("/bookings/:id/reject", h.Booking.Reject)
	}
	if h.Apartment != nil {
		api.GET("/apartments", h.Apartment.Search)
		api.GET("/apartments/:id", h.Apartment.Get)
	}
	if h.Review != nil {
		api.POST("/bookings/:id/reviews", h.Review.Submit)
		api.GET("/apartments/:id/reviews", h.Review.List)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
