package main

import (
	"alcyxob/coaching-marketplace/internal/api"
	"alcyxob/coaching-marketplace/internal/config"
	"alcyxob/coaching-marketplace/internal/observability"
	"alcyxob/coaching-marketplace/internal/repository"
	"alcyxob/coaching-marketplace/internal/repository/memory"
	"alcyxob/coaching-marketplace/internal/repository/mongo"
	"alcyxob/coaching-marketplace/internal/service"
	"alcyxob/coaching-marketplace/internal/stats"
	"alcyxob/coaching-marketplace/internal/storage"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// repositories groups the record store implementation picked at startup.
type repositories struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	coaches    repository.CoachRepository
	media      repository.MediaRepository
	reviews    repository.ReviewRepository
	schedules  repository.ScheduleRepository
	exercises  repository.CatalogEntityRepository
	plates     repository.CatalogEntityRepository
	workshops  repository.WorkshopRepository
}

// @title Coaching Marketplace API
// @version 1.0
// @description Marketplace listing and activity planning for coaches and clients.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(observability.NewLogger(os.Stdout, cfg.Log.Level))
	slog.Info("starting coaching marketplace server")

	repos, closeStore, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("could not open record store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	fileStorage := storage.NewPassthroughStorage()
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			slog.Error("failed to initialize S3 storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration)
	calculator := stats.NewCalculator(repos.schedules, repos.exercises, repos.workshops)
	catalogService := service.NewCatalogService(
		repos.activities, repos.coaches, repos.media, repos.reviews,
		stats.NewBatch(calculator, cfg.Stats.Concurrency),
		stats.NewFinalityDetector(repos.workshops),
		fileStorage, cfg.Media.URLExpiry,
	)
	planningService := service.NewPlanningService(repos.activities, repos.schedules, repos.exercises, repos.plates)

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestIDMiddleware(), api.RequestLogger())
	api.SetupRoutes(router, cfg.JWT.Secret, authService, catalogService, planningService, api.RouteOptions{Metrics: cfg.Metrics.Enabled})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server listening", slog.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	slog.Info("server exiting")
}

// openStore connects to MongoDB, or builds the in-process store for memory:// URIs.
func openStore(cfg config.DatabaseConfig) (*repositories, func(), error) {
	if cfg.InMemory() {
		slog.Warn("using in-memory record store; data is lost on restart")
		s := memory.NewStore()
		return &repositories{
			users:      s.Users(),
			activities: s.Activities(),
			coaches:    s.Coaches(),
			media:      s.Media(),
			reviews:    s.Reviews(),
			schedules:  s.Schedules(),
			exercises:  s.Exercises(),
			plates:     s.Plates(),
			workshops:  s.Workshops(),
		}, func() {}, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Name)
	slog.Info("database connection established", slog.String("database", cfg.Name))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, db)
		slog.Info("index creation process completed")
	}()

	closeFn := func() {
		if err := mongo.DisconnectDB(client); err != nil {
			slog.Error("failed to disconnect MongoDB", slog.String("error", err.Error()))
		}
	}
	return &repositories{
		users:      mongo.NewMongoUserRepository(db),
		activities: mongo.NewMongoActivityRepository(db),
		coaches:    mongo.NewMongoCoachRepository(db),
		media:      mongo.NewMongoMediaRepository(db),
		reviews:    mongo.NewMongoReviewRepository(db),
		schedules:  mongo.NewMongoScheduleRepository(db),
		exercises:  mongo.NewMongoExerciseRepository(db),
		plates:     mongo.NewMongoPlateRepository(db),
		workshops:  mongo.NewMongoWorkshopRepository(db),
	}, closeFn, nil
}
