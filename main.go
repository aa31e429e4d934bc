// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/event"
	"cinema-reservation/internal/job"
	"cinema-reservation/internal/wire"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/storage"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", config.App.Location().String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Redis opsional, tanpa Redis cache dan rate limit dimatikan
	redisClient, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache and rate limit", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var publisher event.Publisher = event.NopPublisher{}
	if config.Broker.URL != "" {
		amqpPublisher, err := event.NewAMQPPublisher(config.Broker.URL, config.Broker.Exchange, logger)
		if err != nil {
			logger.Warn("Broker unavailable, reservation events are dropped", zap.Error(err))
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	store, err := storage.New(config.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	scheduler, err := job.NewScheduler(config.App.Location(), logger)
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	clock := domain.NewClock(config.App.Location())
	if err := scheduler.AddSessionCleanup(config.Jobs.SessionCleanupInterval, repos.Session, clock); err != nil {
		logger.Fatal("Failed to schedule session cleanup", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Shutdown()

	// Wire all dependencies
	app := wire.Wiring(repos, config, wire.Infra{
		Redis:     redisClient,
		Store:     store,
		Publisher: publisher,
	}, logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
	logger.Info("Server stopped")
}
