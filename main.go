package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"yamdb/cmd"
	"yamdb/internal/wire"
	"yamdb/pkg/cache"
	"yamdb/pkg/database"
	"yamdb/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
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

	if config.Database.Migrate {
		if err := database.Migrate(ctx, config.Database, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ratings := cache.NewNopRatingCache()
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, rating cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			ratings = cache.NewRedisRatingCache(client, config.Redis.RatingTTL, logger)
			logger.Info("Rating cache enabled", zap.String("addr", config.Redis.Addr))
		}
	}

	app := wire.Wiring(db, ratings, config, logger)

	if err := cmd.APIServer(ctx, app, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
