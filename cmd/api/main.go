package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/config"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/database"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/database/migration"
	handlers "github.com/Sudarshanjadhavsukhadev/goridezz/internal/http/handler"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/http/middleware"
	tracing "github.com/Sudarshanjadhavsukhadev/goridezz/internal/otel"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/repository/postgres"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/service"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/storage"
)

// bodyLimit must fit two photos at the per-file ceiling plus the form fields.
const bodyLimit = 2*service.MaxPhotoBytes + (1 << 20)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC
	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// A missing database configuration is fatal; the service never starts
	// without its store
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize photo storage: %v", err)
	}

	// Wire repository and service
	bookingRepo := postgres.NewBookingPostgres(db)
	bookingSvc := service.NewBookingService(store, bookingRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	// Global middleware, outermost first
	app.Use(fiberrecover.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: time.Duration(cfg.RateLimit.WindowSec) * time.Second,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, bookingSvc, store)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newStorage selects the photo storage driver. Local disk is the default;
// MinIO is opted into via STORAGE_DRIVER=minio.
func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.StorageDriver == "minio" {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewLocal(cfg.Upload)
}
