package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/fridge-inventory/backend/internal/models"
)

// DefaultPassword is the plain-text password of every user created by CreateUser.
const DefaultPassword = "password123"

// CreateUser inserts a user whose password is DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, firstName, lastName, email string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func CreateFridge(t *testing.T, db *gorm.DB, location string, capacity int) models.Fridge {
	t.Helper()
	fridge := models.Fridge{ID: uuid.New(), Location: location, Capacity: capacity}
	if err := db.Create(&fridge).Error; err != nil {
		t.Fatalf("failed to create fridge: %v", err)
	}
	return fridge
}

func CreateProduct(t *testing.T, db *gorm.DB, owner models.User, fridge models.Fridge, name string, space int) models.Product {
	t.Helper()
	product := models.Product{
		ID:       uuid.New(),
		Name:     name,
		Space:    space,
		UserID:   owner.ID,
		FridgeID: fridge.ID,
	}
	if err := db.Omit("Fridge").Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

func CreateRecipe(t *testing.T, db *gorm.DB, owner models.User, name string, productNames ...string) models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		UserID:      owner.ID,
	}
	for i, n := range productNames {
		recipe.Products = append(recipe.Products, models.RecipeProduct{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			ProductName: n,
			Position:    i,
		})
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe
}
