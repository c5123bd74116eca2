package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/fridge-inventory/backend/internal/models"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Fridge{},
		&models.Product{},
		&models.Recipe{},
		&models.RecipeProduct{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
