// main.go
package main

import (
	"context"
	"log"
	"time"

	"driveschool-booking/cmd"
	"driveschool-booking/internal/data/repository"
	"driveschool-booking/internal/gateway"
	"driveschool-booking/internal/wire"
	"driveschool-booking/pkg/cache"
	"driveschool-booking/pkg/database"
	"driveschool-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to Redis (settlement idempotency)
	rdb, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	idempotencyTTL := time.Duration(config.Booking.IdempotencyTTLHours) * time.Hour
	repos := repository.NewRepository(db, rdb, idempotencyTTL, logger)

	// Payment gateway client
	gw := gateway.NewClient(config.Gateway, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, gw, config, logger)

	// Release online-payment slots whose checkout never settled.
	go sweepPendingSlots(repos, config.Booking, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func sweepPendingSlots(repos *repository.Repository, config utils.BookingConfig, logger *zap.Logger) {
	interval := time.Duration(config.PendingSweepMinutes) * time.Minute
	ttl := time.Duration(config.PendingTTLMinutes) * time.Minute

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		released, err := repos.Slot.ReleaseExpiredOnlinePending(context.Background(), ttl)
		if err != nil {
			logger.Error("Pending slot sweep failed", zap.Error(err))
			continue
		}
		if released > 0 {
			logger.Info("Released lapsed pending slots", zap.Int64("count", released))
		}
	}
}
