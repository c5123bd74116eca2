package models

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	UserID      uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"userId"`
	Products    []RecipeProduct `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeProduct is one required ingredient of a recipe. The name is free text
// and is not linked to any product row.
type RecipeProduct struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	ProductName string    `gorm:"size:255;not null" json:"productName"`
	Position    int       `gorm:"not null;default:0" json:"-"`
}

// ProductNames returns the ingredient names in insertion order.
func (r Recipe) ProductNames() []string {
	names := make([]string, len(r.Products))
	for i, p := range r.Products {
		names[i] = p.ProductName
	}
	return names
}
