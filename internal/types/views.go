package types

import (
	"github.com/google/uuid"

	"github.com/pageza/fridge-inventory/backend/internal/models"
)

// UserView is the public projection of a user. The password hash is never exposed.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

type ProductView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Space    int       `json:"space"`
	UserID   uuid.UUID `json:"userId"`
	FridgeID uuid.UUID `json:"fridgeId"`
}

type RecipeView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	UserID       uuid.UUID `json:"userId"`
	ProductNames []string  `json:"productNames"`
}

// RecipeSuggestion is a generated recipe idea. It is not persisted.
type RecipeSuggestion struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ProductNames []string `json:"productNames"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUserView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		ID:       p.ID,
		Name:     p.Name,
		Space:    p.Space,
		UserID:   p.UserID,
		FridgeID: p.FridgeID,
	}
}

func NewRecipeView(r models.Recipe) RecipeView {
	return RecipeView{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		UserID:       r.UserID,
		ProductNames: r.ProductNames(),
	}
}
