package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/fridge-inventory/backend/config"
	"github.com/pageza/fridge-inventory/backend/internal/database"
	"github.com/pageza/fridge-inventory/backend/internal/logger"
	"github.com/pageza/fridge-inventory/backend/internal/service"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

// Fridges present in the office.
var fridges = []struct {
	location string
	capacity int
}{
	{location: "floor1", capacity: 100000},
	{location: "floor2", capacity: 50000},
	{location: "floor2", capacity: 10000},
}

var demoUsers = []types.CreateUserRequest{
	{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Password: "testpassword123"},
	{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Password: "testpassword123"},
}

func main() {
	reset := flag.Bool("reset", false, "delete every fridge and its products before seeding")
	withUsers := flag.Bool("demo-users", false, "also create demo users")
	flag.Parse()

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fridgeService := service.NewFridgeService(db, log)

	if *reset {
		if err := fridgeService.DeleteAll(ctx); err != nil {
			log.Fatal("failed to delete fridges", zap.Error(err))
		}
		log.Info("removed existing fridges")
	}

	existing, err := fridgeService.List(ctx)
	if err != nil {
		log.Fatal("failed to list fridges", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("fridges already seeded, use -reset to recreate them", zap.Int("count", len(existing)))
	} else {
		for _, f := range fridges {
			fridge, err := fridgeService.Create(ctx, f.location, f.capacity)
			if err != nil {
				log.Fatal("failed to create fridge", zap.String("location", f.location), zap.Error(err))
			}
			log.Info("created fridge",
				zap.String("id", fridge.ID.String()),
				zap.String("location", fridge.Location),
				zap.Int("capacity", fridge.Capacity),
			)
		}
	}

	if *withUsers {
		userService := service.NewUserService(db, log)
		for _, req := range demoUsers {
			user, err := userService.Create(ctx, req)
			if errors.Is(err, service.ErrBadRequest) {
				log.Info("demo user already exists", zap.String("email", req.Email))
				continue
			}
			if err != nil {
				log.Fatal("failed to create demo user", zap.String("email", req.Email), zap.Error(err))
			}
			log.Info("created demo user", zap.String("id", user.ID.String()), zap.String("email", user.Email))
		}
	}

	all, err := fridgeService.List(ctx)
	if err != nil {
		log.Fatal("failed to list fridges", zap.Error(err))
	}
	for _, f := range all {
		used, err := fridgeService.Usage(ctx, f.ID)
		if err != nil {
			log.Fatal("failed to compute fridge usage", zap.Error(err))
		}
		log.Info("fridge",
			zap.String("id", f.ID.String()),
			zap.String("location", f.Location),
			zap.Int("used", used),
			zap.Int("capacity", f.Capacity),
		)
	}
}
