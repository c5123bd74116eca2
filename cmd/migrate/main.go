package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/pageza/fridge-inventory/backend/config"
	"github.com/pageza/fridge-inventory/backend/internal/database"
	"github.com/pageza/fridge-inventory/backend/internal/logger"
)

func main() {
	check := flag.Bool("check", false, "only verify the database is reachable")
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

	if *check {
		log.Info("database reachable", zap.String("driver", cfg.DBDriver))
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to apply migrations", zap.Error(err))
	}
	log.Info("all migrations applied", zap.String("driver", cfg.DBDriver))
}
