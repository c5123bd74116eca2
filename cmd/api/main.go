package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/fridge-inventory/backend/config"
	"github.com/pageza/fridge-inventory/backend/internal/api"
	"github.com/pageza/fridge-inventory/backend/internal/database"
	"github.com/pageza/fridge-inventory/backend/internal/logger"
	"github.com/pageza/fridge-inventory/backend/internal/middleware"
	"github.com/pageza/fridge-inventory/backend/internal/server"
	"github.com/pageza/fridge-inventory/backend/internal/service"
)

func main() {
	log := logger.Must(config.GetEnvironment())
	defer logger.Sync(log)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Suggestions are only rate limited when Redis is reachable.
	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("redis unavailable, suggestion rate limiting disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := service.NewGenerator(ctx, cfg)
	if err != nil {
		log.Fatal("failed to create recipe generator", zap.Error(err))
	}

	srv := server.New(cfg, db, log, api.Services{
		Auth:              service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL),
		Users:             service.NewUserService(db, log),
		Products:          service.NewProductService(db, log),
		Recipes:           service.NewRecipeService(db, generator, cfg.LLMTimeout, log),
		SuggestionLimiter: middleware.NewSuggestionRateLimiter(redisClient, cfg.SuggestionRateLimit, log),
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout+time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
