package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"department-service/internal/api"
	"department-service/internal/config"
	"department-service/internal/events"
	"department-service/internal/repository"
	"department-service/internal/s3"
	"department-service/internal/service"
	"department-service/internal/token"
	"department-service/internal/tracing"
	_ "department-service/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables")
	}

	api.SetupGlobalHandler("department-service")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			handleMigrations(cfg)
			return
		case "bootstrap-admin":
			handleBootstrapAdmin(cfg)
			return
		}
	}

	shutdownTracer, err := tracing.InitTracerProvider("department-service", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	db := connectDB(cfg)
	defer db.Close()

	var publisher events.Publisher
	publisher, err = events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		log.Printf("WARNING: Failed to connect to NATS, notifications disabled: %v", err)
		publisher = events.NoopPublisher{}
	}

	var presigner *s3.ImagePresigner
	if cfg.S3Bucket != "" {
		presigner, err = s3.NewImagePresigner(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 presigner: %v", err)
		}
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewPostgresUserRepository(db)
	eventRepo := repository.NewPostgresEventRepository(db)
	announcementRepo := repository.NewPostgresAnnouncementRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	eventService := service.NewEventService(eventRepo, publisher)
	announcementService := service.NewAnnouncementService(announcementRepo, publisher)

	authHandler := api.NewAuthHandler(authService)
	eventHandler := api.NewEventHandler(eventService, presigner)
	announcementHandler := api.NewAnnouncementHandler(announcementService)
	statsHandler := api.NewStatsHandler(authService, eventService, announcementService)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "department-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	root := app.Group("/api")

	root.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "Department API is working!"})
	})

	root.Post("/signup", authHandler.Signup)
	root.Post("/login", authHandler.Login)
	root.Get("/me", api.RequireAuth(tokens), authHandler.Me)

	root.Get("/events", eventHandler.ListEvents)
	root.Post("/events", api.RequireAuth(tokens), eventHandler.CreateEvent)
	root.Post("/events/upload-url", api.RequireAuth(tokens), eventHandler.GetImageUploadURL)
	root.Put("/events/:id", api.RequireAdmin(tokens), eventHandler.UpdateEvent)
	root.Delete("/events/:id", api.RequireAdmin(tokens), eventHandler.DeleteEvent)

	root.Get("/announcements", announcementHandler.ListAnnouncements)
	root.Post("/announcements", api.RequireAuth(tokens), announcementHandler.CreateAnnouncement)
	root.Put("/announcements/:id", api.RequireAdmin(tokens), announcementHandler.UpdateAnnouncement)
	root.Delete("/announcements/:id", api.RequireAdmin(tokens), announcementHandler.DeleteAnnouncement)

	admin := root.Group("/admin", api.RequireAdmin(tokens))
	admin.Post("/signup", authHandler.AdminSignup)
	admin.Get("/events", eventHandler.ListAllEvents)
	admin.Put("/events/:id", eventHandler.UpdateEvent)
	admin.Delete("/events/:id", eventHandler.DeleteEvent)
	admin.Get("/announcements", announcementHandler.ListAnnouncements)
	admin.Put("/announcements/:id", announcementHandler.UpdateAnnouncement)
	admin.Delete("/announcements/:id", announcementHandler.DeleteAnnouncement)
	admin.Get("/stats", statsHandler.GetStats)

	log.Printf("Listening department-service on port %s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}

// handleBootstrapAdmin promotes the earliest-created user to admin. This is
// deliberately CLI-only: exposing it as a route would let anyone mint admins.
func handleBootstrapAdmin(cfg *config.Config) {
	db := connectDB(cfg)
	defer db.Close()

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(repository.NewPostgresUserRepository(db), tokens)

	user, err := authService.PromoteFirstUser(context.Background())
	if err != nil {
		log.Fatalf("bootstrap-admin failed: %v", err)
	}

	fmt.Printf("User %s is now an admin.\n", user.Email)
}
