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
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	appoutbox "luxestay/internal/app/outbox"
	authsvc "luxestay/internal/app/services/auth"
	bookingsvc "luxestay/internal/app/services/booking"
	"luxestay/internal/app/services/catalog"
	wishlistsvc "luxestay/internal/app/services/wishlist"
	domainauth "luxestay/internal/domain/auth"
	domainbooking "luxestay/internal/domain/booking"
	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/rates"
	"luxestay/internal/domain/shared/money"
	domainuser "luxestay/internal/domain/user"
	domainwishlist "luxestay/internal/domain/wishlist"
	"luxestay/internal/infra/broker/kafka"
	"luxestay/internal/infra/config"
	mongodb "luxestay/internal/infra/db/mongo"
	ginserver "luxestay/internal/infra/http/gin"
	"luxestay/internal/infra/notify"
	"luxestay/internal/infra/obs"
	infraoutbox "luxestay/internal/infra/outbox"
	"luxestay/internal/infra/security"
	"luxestay/internal/infra/storage/memory"
	redisstore "luxestay/internal/infra/storage/redis"
	"luxestay/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("prod").Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := loadPropertyFixtures(ctx, cfg.FixturesPath, app.properties, logger); err != nil {
		logger.Warn("property fixtures load failed", "error", err, "path", cfg.FixturesPath)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	for _, runner := range app.background {
		go runner(ctx)
	}

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

type application struct {
	handlers   ginserver.Handlers
	properties domainproperty.Repository
	ready      func() error
	background []func(context.Context)
}

// eventStore is what the write side and the polling worker share.
type eventStore interface {
	appoutbox.Outbox
	infraoutbox.Store
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		properties domainproperty.Repository
		bookings   domainbooking.Repository
		users      domainuser.Repository
		wishlist   domainwishlist.Repository
		sessions   domainauth.SessionStore
		events     eventStore
		ready      = func() error { return nil }
	)

	switch cfg.StorageMode {
	case config.StorageMongo:
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		properties = mongodb.NewPropertyRepository(client.DB)
		bookings = mongodb.NewBookingRepository(client.DB)
		users = mongodb.NewUserRepository(client.DB)
		wishlist = mongodb.NewWishlistRepository(client.DB)
		events = infraoutbox.NewMongoStore(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		logger.Info("mongo storage selected", "database", cfg.MongoDB)
	default:
		properties = memory.NewPropertyRepository()
		bookings = memory.NewBookingRepository()
		users = memory.NewUserRepository()
		wishlist = memory.NewWishlistRepository()
		events = memory.NewOutbox()
		logger.Info("in-memory storage selected")
	}

	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return application{}, fmt.Errorf("redis connect: %w", err)
		}
		sessions = redisstore.NewSessionStore(redisClient)
		logger.Info("redis session store selected", "addr", cfg.RedisAddr)
	} else {
		sessions = memory.NewSessionStore()
	}

	var uploader s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		photos, err := s3.NewPhotoStore(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			return application{}, fmt.Errorf("s3 configure: %w", err)
		}
		uploader = photos
	}

	encoder := appoutbox.JSONEventEncoder{}
	authService := &authsvc.Service{
		Users:      users,
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	if cfg.AdminEmail != "" {
		admin, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword)
		if err != nil {
			return application{}, fmt.Errorf("bootstrap admin: %w", err)
		}
		logger.Info("admin account ready", "user_id", admin.ID)
	}
	bookingService := &bookingsvc.Service{
		Bookings:   bookings,
		Properties: properties,
		Outbox:     events,
		Encoder:    encoder,
		Logger:     logger,
	}
	catalogService := &catalog.Service{
		Properties: properties,
		Uploader:   uploader,
		Outbox:     events,
		Encoder:    encoder,
		Logger:     logger,
	}
	wishlistService := &wishlistsvc.Service{
		Wishlist:   wishlist,
		Properties: properties,
		Logger:     logger,
	}

	notifications := notify.NewCenter()

	var background []func(context.Context)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, fmt.Errorf("kafka producer: %w", err)
		}
		worker := &infraoutbox.Worker{
			Store:       events,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
			Logger:      logger,
		}
		background = append(background, func(ctx context.Context) {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		})

		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, "luxestay-notifications", nil,
			notify.BookingEventHandler{Center: notifications}, logger)
		if err != nil {
			return application{}, fmt.Errorf("kafka consumer: %w", err)
		}
		bookingTopic := cfg.KafkaTopicPrefix + "booking.events.v1"
		background = append(background, func(ctx context.Context) {
			defer consumer.Close()
			if err := consumer.Run(ctx, []string{bookingTopic}); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("notification consumer stopped", "error", err)
			}
		})
		logger.Info("kafka wired", "brokers", cfg.KafkaBrokers, "topic", bookingTopic)
	} else {
		logger.Info("kafka not configured, events stay in the outbox")
	}

	handlers := ginserver.Handlers{
		Auth:     ginserver.AuthHandler{Service: authService, Logger: logger},
		Property: ginserver.PropertyHandler{Service: catalogService, Logger: logger},
		Booking: ginserver.BookingHandler{
			Service:     bookingService,
			Users:       users,
			Idempotency: ginserver.NewIdempotencyStore(24 * time.Hour),
			Logger:      logger,
		},
		Me: ginserver.MeHandler{
			Wishlists: wishlistService,
			Feed:      notifications,
			Logger:    logger,
		},
		Admin:          ginserver.AdminHandler{Service: catalogService, Logger: logger},
		Rates:          ginserver.RatesHandler{Rates: rates.Default()},
		Tilt:           ginserver.NewTiltHandler(notifications, logger),
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	}

	return application{
		handlers:   handlers,
		properties: properties,
		ready:      ready,
		background: background,
	}, nil
}

type propertyFixture struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PriceCents  int64       `json:"price_cents"`
	Currency    string      `json:"currency"`
	Location    string      `json:"location"`
	Country     string      `json:"country"`
	Type        string      `json:"type"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	MaxGuests   int         `json:"max_guests"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"review_count"`
	Amenities   []string    `json:"amenities"`
	Images      []string    `json:"images"`
	Host        fixtureHost `json:"host"`
	Featured    bool        `json:"featured"`
}

type fixtureHost struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func loadPropertyFixtures(ctx context.Context, path string, repo domainproperty.Repository, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("property fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []propertyFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	imported := 0
	for _, fx := range fixtures {
		rate, err := money.New(fx.PriceCents, fx.Currency)
		if err != nil {
			logger.Error("fixture has invalid rate", "property_id", fx.ID, "error", err)
			continue
		}
		prop, err := domainproperty.New(domainproperty.CreateParams{
			ID:          domainproperty.ID(fx.ID),
			Name:        fx.Name,
			Description: fx.Description,
			NightlyRate: rate,
			Location:    fx.Location,
			Country:     fx.Country,
			Type:        domainproperty.Type(fx.Type),
			Bedrooms:    fx.Bedrooms,
			Bathrooms:   fx.Bathrooms,
			MaxGuests:   fx.MaxGuests,
			Rating:      fx.Rating,
			ReviewCount: fx.ReviewCount,
			Amenities:   fx.Amenities,
			Images:      fx.Images,
			Host:        domainproperty.Host{ID: fx.Host.ID, Name: fx.Host.Name, Image: fx.Host.Image},
			Featured:    fx.Featured,
			Now:         now,
		})
		if err != nil {
			logger.Error("fixture invalid", "property_id", fx.ID, "error", err)
			continue
		}
		prop.ClearEvents()
		if err := repo.Save(ctx, prop); err != nil {
			logger.Error("cannot store fixture property", "property_id", fx.ID, "error", err)
			continue
		}
		imported++
	}
	logger.Info("property fixtures imported", "count", imported)
	return nil
}
