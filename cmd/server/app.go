package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"devevent/config"
	"devevent/internal/adapters/calendar"
	"devevent/internal/adapters/email"
	"devevent/internal/adapters/storage"
	deliveryhttp "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
	"devevent/internal/repository/cache"
	"devevent/internal/repository/mongodb"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const calendarProductID = "-//DevEvent//Events//EN"

// app owns every long-lived resource built at startup.
type app struct {
	handler http.Handler
	logger  *slog.Logger
	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func(context.Context) error
}

func (a *app) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, namedCloser{name: name, close: fn})
}

// close releases resources in reverse order of creation.
func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(ctx); err != nil {
			a.logger.Warn("close failed", "resource", c.name, "err", err)
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.close(context.WithoutCancel(ctx))
		}
	}()

	eventRepo, bookingRepo, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.onClose("redis", func(context.Context) error { return rdb.Close() })
		eventRepo = cache.NewEventRepository(eventRepo, rdb, cfg.Redis.TTL, logger)
		logger.Info("event cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	emailService, err := newEmailService(cfg, logger)
	if err != nil {
		return nil, err
	}

	baseURL := cfg.Blob.PublicBaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}
	blobs, uploads, err := storage.NewBlobStore(storage.BlobConfig{
		Provider: cfg.Blob.Provider,
		S3: storage.S3Config{
			Bucket:          cfg.Blob.S3Bucket,
			Region:          cfg.Blob.S3Region,
			AccessKeyID:     cfg.Blob.S3AccessKeyID,
			SecretAccessKey: cfg.Blob.S3SecretAccessKey,
			Endpoint:        cfg.Blob.S3Endpoint,
			PublicBaseURL:   cfg.Blob.PublicBaseURL,
		},
		Local: storage.LocalConfig{Dir: cfg.Blob.LocalDir, BaseURL: baseURL},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}

	eventService := services.NewEventService(eventRepo, cfg.RequestTimeout)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, emailService, logger, cfg.RequestTimeout)

	eventController := controllers.NewEventController(
		logger,
		eventService,
		bookingService,
		storage.NewImageStore(blobs, cfg.MaxImageWidth),
		calendar.NewRenderer(calendarProductID, cfg.CalendarDomain),
		cfg.IsDevelopment(),
		cfg.MaxUploadBytes,
	)
	bookingController := controllers.NewBookingController(logger, bookingService, cfg.IsDevelopment())
	trusted, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	limiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:            cfg.RateLimit.RPS,
		Burst:          cfg.RateLimit.Burst,
		IdleTTL:        cfg.RateLimit.IdleTTL,
		TrustedProxies: trusted,
	})

	mux := deliveryhttp.NewRouter(eventController, bookingController, limiter, uploads)
	a.handler = middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, mux))
	ok = true
	return a, nil
}

// openStore builds the repositories for cfg.DBDriver. Postgres gets its
// schema at startup; Mongo connects on first use.
func (a *app) openStore(ctx context.Context, cfg *config.Config) (domain.EventRepository, domain.BookingRepository, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		db := mongodb.NewLazyDatabase(cfg.MongoURI, cfg.MongoDatabase, a.logger)
		a.onClose("mongodb", db.Close)
		return mongodb.NewEventRepository(db), mongodb.NewBookingRepository(db), nil
	default:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		a.onClose("postgres", func(context.Context) error { return db.Close() })

		schemaCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
		if err := postgres.EnsureSchema(schemaCtx, db); err != nil {
			return nil, nil, err
		}
		a.logger.Info("postgres schema ready")
		return postgres.NewEventRepository(db), postgres.NewBookingRepository(db), nil
	}
}

func newEmailService(cfg *config.Config, logger *slog.Logger) (domain.EmailService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}
	return services.NewEmailService(mailer, renderer, logger), nil
}
