package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/fridge-inventory/backend/internal/metrics"
	"github.com/pageza/fridge-inventory/backend/internal/models"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

type RecipeService struct {
	db        *gorm.DB
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewRecipeService creates a recipe service. Suggestion calls are cancelled after timeout.
func NewRecipeService(db *gorm.DB, generator Generator, timeout time.Duration, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:        db,
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, req types.CreateRecipeRequest) (*types.RecipeView, error) {
	recipe := models.Recipe{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Create(&recipe).Error; err != nil {
			return err
		}
		rows, err := replaceIngredients(tx, recipe.ID, req.ProductNames)
		recipe.Products = rows
		return err
	})
	if err != nil {
		return nil, wrapStorage(s.logger, "create recipe", err)
	}

	view := types.NewRecipeView(recipe)
	return &view, nil
}

func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*types.RecipeView, error) {
	recipe, err := findRecipe(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, wrapStorage(s.logger, "get recipe", err)
	}
	view := types.NewRecipeView(*recipe)
	return &view, nil
}

func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]types.RecipeView, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Products", orderedIngredients).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&recipes).Error
	if err != nil {
		return nil, wrapStorage(s.logger, "list recipes", err)
	}

	views := make([]types.RecipeView, len(recipes))
	for i, r := range recipes {
		views[i] = types.NewRecipeView(r)
	}
	return views, nil
}

// Update changes only the fields present in req. A present ProductNames list
// replaces all existing ingredients.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, req types.UpdateRecipeRequest) (*types.RecipeView, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	var newOwner uuid.UUID
	if req.UserID != nil {
		id, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, badRequest("userId must be a UUID")
		}
		newOwner = id
		updates["user_id"] = id
	}

	var recipe *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return forbidden(MsgNotRecipeOwner)
		}
		if req.UserID != nil {
			ok, err := userExists(tx, newOwner)
			if err != nil {
				return err
			}
			if !ok {
				return notFound(MsgUserNotFound)
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(current).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.ProductNames != nil {
			if _, err := replaceIngredients(tx, recipeID, req.ProductNames); err != nil {
				return err
			}
		}
		recipe, err = findRecipe(tx, recipeID)
		return err
	})
	if err != nil {
		return nil, wrapStorage(s.logger, "update recipe", err)
	}

	view := types.NewRecipeView(*recipe)
	return &view, nil
}

func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}
		if recipe.UserID != userID {
			return forbidden(MsgNotRecipeOwner)
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipeID).Error
	})
	if err != nil {
		return wrapStorage(s.logger, "delete recipe", err)
	}
	return nil
}

// MissingProducts lists the recipe's ingredients that match no product name
// owned by userID. Matching is exact and case-sensitive. Recipe order and
// duplicates are kept.
func (s *RecipeService) MissingProducts(ctx context.Context, userID, recipeID uuid.UUID) ([]string, error) {
	db := s.db.WithContext(ctx)
	recipe, err := findRecipe(db, recipeID)
	if err != nil {
		return nil, wrapStorage(s.logger, "get recipe", err)
	}

	owned, err := ownedProductNames(db, userID)
	if err != nil {
		return nil, wrapStorage(s.logger, "list product names", err)
	}
	have := make(map[string]struct{}, len(owned))
	for _, name := range owned {
		have[name] = struct{}{}
	}

	missing := []string{}
	for _, name := range recipe.ProductNames() {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// Suggestions asks the generator for recipes using the distinct names of the
// user's products. Failures are not retried.
func (s *RecipeService) Suggestions(ctx context.Context, userID uuid.UUID) ([]types.RecipeSuggestion, error) {
	names, err := ownedProductNames(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, wrapStorage(s.logger, "list product names", err)
	}
	if len(names) == 0 {
		metrics.ObserveSuggestion(metrics.OutcomeEmpty, 0)
		return []types.RecipeSuggestion{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	suggestions, err := s.generator.Generate(ctx, names)
	if err != nil {
		metrics.ObserveSuggestion(metrics.OutcomeError, time.Since(start))
		s.logger.Error("recipe suggestion failed",
			zap.String("user_id", userID.String()),
			zap.Int("products", len(names)),
			zap.Error(err),
		)
		return nil, &Error{Kind: ErrUpstream, Message: MsgSuggestionFailed}
	}
	metrics.ObserveSuggestion(metrics.OutcomeSuccess, time.Since(start))

	if suggestions == nil {
		suggestions = []types.RecipeSuggestion{}
	}
	return suggestions, nil
}

func orderedIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func findRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.Preload("Products", orderedIngredients).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgRecipeNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}

func lockRecipe(tx *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := forUpdate(tx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgRecipeNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}

// replaceIngredients drops every ingredient row of the recipe and inserts names in order.
func replaceIngredients(tx *gorm.DB, recipeID uuid.UUID, names []string) ([]models.RecipeProduct, error) {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeProduct{}).Error; err != nil {
		return nil, err
	}
	rows := make([]models.RecipeProduct, len(names))
	for i, name := range names {
		rows[i] = models.RecipeProduct{
			ID:          uuid.New(),
			RecipeID:    recipeID,
			ProductName: name,
			Position:    i,
		}
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func ownedProductNames(db *gorm.DB, userID uuid.UUID) ([]string, error) {
	var names []string
	err := db.Model(&models.Product{}).
		Where("user_id = ?", userID).
		Distinct("name").
		Order("name").
		Pluck("name", &names).Error
	return names, err
}
