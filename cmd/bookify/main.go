package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"bookify/internal/app/commands"
	apartmentapp "bookify/internal/app/handlers/apartment"
	bookingapp "bookify/internal/app/handlers/booking"
	reviewapp "bookify/internal/app/handlers/review"
	userapp "bookify/internal/app/handlers/user"
	"bookify/internal/app/middleware"
	"bookify/internal/app/notify"
	appoutbox "bookify/internal/app/outbox"
	"bookify/internal/app/queries"
	domainapartment "bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/pricing"
	domainreview "bookify/internal/domain/review"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/money"
	domainuser "bookify/internal/domain/user"
	"bookify/internal/infra/broker/kafka"
	"bookify/internal/infra/config"
	mongodb "bookify/internal/infra/db/mongo"
	"bookify/internal/infra/email"
	ginserver "bookify/internal/infra/http/gin"
	"bookify/internal/infra/obs"
	infraoutbox "bookify/internal/infra/outbox"
	"bookify/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	stores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage setup failed", "error", err)
		os.Exit(1)
	}
	defer stores.close()

	app := buildApplication(cfg, stores, logger)

	fixturesPath := getenv("APARTMENT_FIXTURES", filepath.Join("data", "apartments.json"))
	if err := loadApartmentFixtures(ctx, fixturesPath, stores.apartments, logger); err != nil {
		logger.Warn("apartment fixtures load failed", "error", err, "path", fixturesPath)
	}

	worker := &infraoutbox.Worker{
		Store:       stores.outboxStore,
		Producer:    buildProducer(cfg, logger),
		Interval:    cfg.OutboxPollInterval,
		TopicPrefix: cfg.KafkaTopicPrefix,
		ID:          uuid.NewString(),
		Backoff:     cfg.RetryBackoff,
	}
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("outbox worker stopped", "error", err)
		}
	}()

	if cfg.KafkaConsumerGroup != "" && len(cfg.KafkaBrokers) > 0 {
		go runConsumer(ctx, cfg, logger)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: stores.ready,
	}, app)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type stores struct {
	apartments  domainapartment.Repository
	users       domainuser.Repository
	bookings    domainbooking.Repository
	reviews     domainreview.Repository
	search      apartmentapp.Searcher
	outbox      appoutbox.Outbox
	outboxStore infraoutbox.Store
	idempotency middleware.IdempotencyStore
	close       func()
	ready       func() error
}

func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	idStore := memory.NewIdempotencyStore(cfg.IdempotencyTTL)

	if cfg.StorageMode == "mongo" {
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return stores{}, err
		}
		db := client.Database(cfg.MongoDB)
		box := mongodb.NewOutbox(db)
		logger.Info("mongo storage ready", "database", cfg.MongoDB)
		return stores{
			apartments:  mongodb.NewApartmentRepository(db),
			users:       mongodb.NewUserRepository(db),
			bookings:    mongodb.NewBookingRepository(db),
			reviews:     mongodb.NewReviewRepository(db),
			search:      mongodb.NewApartmentSearch(db),
			outbox:      box,
			outboxStore: box,
			idempotency: idStore,
			close: func() {
				_ = client.Disconnect(context.Background())
			},
			ready: func() error {
				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return client.Ping(pingCtx, nil)
			},
		}, nil
	}

	apartments := memory.NewApartmentRepository()
	bookings := memory.NewBookingRepository()
	box := memory.NewOutbox()
	return stores{
		apartments:  apartments,
		users:       memory.NewUserRepository(),
		bookings:    bookings,
		reviews:     memory.NewReviewRepository(),
		search:      &memory.ApartmentSearch{Apartments: apartments, Bookings: bookings},
		outbox:      box,
		outboxStore: box,
		idempotency: idStore,
		close:       func() {},
		ready:       func() error { return nil },
	}, nil
}

func buildApplication(cfg config.Config, s stores, logger *slog.Logger) ginserver.Handlers {
	systemClock := clock.System{}
	encoder := appoutbox.JSONEventEncoder{}
	pricingService := pricing.NewService(nil)

	sender := &email.Sender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.SMTPFrom,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		Logger:   logger,
	}
	notifier := &notify.BookingReservedHandler{
		Bookings: s.bookings,
		Users:    s.users,
		Email:    sender,
		Logger:   logger,
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ReserveBookingCommand{}.Key(), &bookingapp.ReserveBookingHandler{
		Apartments: s.apartments,
		Users:      s.users,
		Bookings:   s.bookings,
		Pricing:    pricingService,
		Clock:      systemClock,
		Outbox:     s.outbox,
		Encoder:    encoder,
		Notifier:   notifier,
	})
	transitions := &bookingapp.TransitionHandler{
		Bookings: s.bookings,
		Clock:    systemClock,
		Outbox:   s.outbox,
		Encoder:  encoder,
	}
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, bookingapp.CompleteBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, bookingapp.RejectBookingCommand{}.Key(), transitions)
	commands.RegisterHandler(commandBus, userapp.RegisterUserCommand{}.Key(), &userapp.RegisterUserHandler{
		Users:   s.users,
		Clock:   systemClock,
		Outbox:  s.outbox,
		Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, reviewapp.SubmitReviewCommand{}.Key(), &reviewapp.SubmitReviewHandler{
		Bookings: s.bookings,
		Reviews:  s.reviews,
		Clock:    systemClock,
		Outbox:   s.outbox,
		Encoder:  encoder,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{Bookings: s.bookings})
	queries.RegisterHandler(queryBus, userapp.GetUserQuery{}.Key(), &userapp.GetUserHandler{Users: s.users})
	queries.RegisterHandler(queryBus, apartmentapp.GetApartmentQuery{}.Key(), &apartmentapp.GetApartmentHandler{Apartments: s.apartments})
	queries.RegisterHandler(queryBus, apartmentapp.SearchApartmentsQuery{}.Key(), &apartmentapp.SearchApartmentsHandler{Apartments: s.search})
	queries.RegisterHandler(queryBus, reviewapp.ListReviewsQuery{}.Key(), &reviewapp.ListReviewsHandler{Reviews: s.reviews})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Logging(logger),
		middleware.Idempotency(s.idempotency),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger),
	)

	return ginserver.Handlers{
		User:      ginserver.UserHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Booking:   ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Apartment: ginserver.ApartmentHandler{Queries: queryBusWithMiddleware},
		Review:    ginserver.ReviewHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
	}
}

func buildProducer(cfg config.Config, logger *slog.Logger) infraoutbox.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no Kafka brokers configured, events will be logged")
		return logProducer{logger: logger}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Error("kafka producer unavailable, falling back to log delivery", "error", err)
		return logProducer{logger: logger}
	}
	return producer
}

func runConsumer(ctx context.Context, cfg config.Config, logger *slog.Logger) {
	handler := &kafka.EventLogger{Logger: logger}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaConsumerGroup, nil, handler)
	if err != nil {
		logger.Error("kafka consumer unavailable", "error", err)
		return
	}
	defer consumer.Close()

	topics := []string{
		cfg.KafkaTopicPrefix + "booking.events.v1",
		cfg.KafkaTopicPrefix + "user.events.v1",
		cfg.KafkaTopicPrefix + "review.events.v1",
	}
	if err := consumer.Run(ctx, topics); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("kafka consumer stopped", "error", err)
	}
}

func loadApartmentFixtures(ctx context.Context, path string, repo domainapartment.Repository, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("apartment fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []apartmentFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		ap, err := fx.toAggregate()
		if err != nil {
			logger.Error("fixture invalid", "apartment_id", fx.ID, "error", err)
			continue
		}
		if saved := repo.Save(ctx, ap); saved.IsFailure() {
			logger.Error("cannot store fixture apartment", "apartment_id", fx.ID, "code", saved.Err().Code)
			continue
		}
		logger.Info("apartment fixture imported", "apartment_id", ap.ID)
	}
	return nil
}

type apartmentFixture struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Street      string   `json:"street"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
	PostalCode  string   `json:"postal_code"`
	Price       int64    `json:"price"`
	CleaningFee int64    `json:"cleaning_fee"`
	Currency    string   `json:"currency"`
	Amenities   []string `json:"amenities"`
}

func (fx apartmentFixture) toAggregate() (*domainapartment.Apartment, error) {
	currency, err := money.FromCode(fx.Currency)
	if err != nil {
		return nil, err
	}
	address, err := domainapartment.NewAddress(fx.Street, fx.City, fx.State, fx.Country, fx.PostalCode)
	if err != nil {
		return nil, err
	}
	name, err := domainapartment.NewName(fx.Name)
	if err != nil {
		return nil, err
	}
	description, err := domainapartment.NewDescription(fx.Description)
	if err != nil {
		return nil, err
	}
	amenities := make([]domainapartment.Amenity, 0, len(fx.Amenities))
	for _, a := range fx.Amenities {
		amenities = append(amenities, domainapartment.Amenity(a))
	}
	id := domainapartment.ID(fx.ID)
	if fx.ID == "" {
		id = domainapartment.NewID()
	}
	return domainapartment.New(domainapartment.CreateParams{
		ID:          id,
		Address:     address,
		Name:        name,
		Description: description,
		CleaningFee: money.Must(fx.CleaningFee, currency),
		Price:       money.Must(fx.Price, currency),
		Amenities:   amenities,
	})
}

// logProducer stands in for Kafka when no brokers are configured.
type logProducer struct {
	logger *slog.Logger
}

func (p logProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	p.logger.Info("event published", "topic", topic, "key", key, "bytes", len(payload))
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
