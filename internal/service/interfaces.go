package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/fridge-inventory/backend/internal/types"
)

// Generator produces recipe ideas from a list of product names.
type Generator interface {
	Generate(ctx context.Context, productNames []string) ([]types.RecipeSuggestion, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, email, password string) (*types.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// IUserService defines the interface for user directory operations
type IUserService interface {
	Create(ctx context.Context, req types.CreateUserRequest) (*types.UserView, error)
	Get(ctx context.Context, id uuid.UUID) (*types.UserView, error)
	List(ctx context.Context, search string) ([]types.UserView, error)
	Update(ctx context.Context, id uuid.UUID, req types.UpdateUserRequest) (*types.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IProductService defines the interface for product inventory operations
type IProductService interface {
	Create(ctx context.Context, userID uuid.UUID, name string, space int, fridgeID uuid.UUID) (*types.ProductView, error)
	Get(ctx context.Context, id uuid.UUID) (*types.ProductView, error)
	List(ctx context.Context, userID uuid.UUID, filter ProductFilter) ([]types.ProductView, error)
	Gift(ctx context.Context, productID, ownerID, receiverID uuid.UUID) (*types.ProductView, error)
	GiftList(ctx context.Context, userID, receiverID uuid.UUID, filter ProductFilter) error
	Delete(ctx context.Context, productID, userID uuid.UUID) error
	DeleteList(ctx context.Context, userID uuid.UUID, filter ProductFilter) error
}

// IRecipeService defines the interface for recipe book operations
type IRecipeService interface {
	Create(ctx context.Context, userID uuid.UUID, req types.CreateRecipeRequest) (*types.RecipeView, error)
	Get(ctx context.Context, id uuid.UUID) (*types.RecipeView, error)
	List(ctx context.Context, userID uuid.UUID) ([]types.RecipeView, error)
	Update(ctx context.Context, userID, recipeID uuid.UUID, req types.UpdateRecipeRequest) (*types.RecipeView, error)
	Delete(ctx context.Context, userID, recipeID uuid.UUID) error
	MissingProducts(ctx context.Context, userID, recipeID uuid.UUID) ([]string, error)
	Suggestions(ctx context.Context, userID uuid.UUID) ([]types.RecipeSuggestion, error)
}
