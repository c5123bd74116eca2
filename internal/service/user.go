package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/fridge-inventory/backend/internal/models"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

func (s *UserService) Create(ctx context.Context, req types.CreateUserRequest) (*types.UserView, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, req.Email, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, s.wrap("create user", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID.String()))
	view := types.NewUserView(user)
	return &view, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*types.UserView, error) {
	user, err := findUser(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, s.wrap("get user", err)
	}
	view := types.NewUserView(*user)
	return &view, nil
}

// List returns every user, or those whose full name or email contains search, ignoring case.
func (s *UserService) List(ctx context.Context, search string) ([]types.UserView, error) {
	query := s.db.WithContext(ctx).Order("created_at, id")
	if search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			"LOWER(first_name || ' ' || last_name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\'",
			like, like,
		)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, s.wrap("list users", err)
	}

	views := make([]types.UserView, len(users))
	for i, u := range users {
		views[i] = types.NewUserView(u)
	}
	return views, nil
}

// Update changes only the fields present in req. A new password is re-hashed.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req types.UpdateUserRequest) (*types.UserView, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = findUser(forUpdate(tx), id); err != nil {
			return err
		}
		if req.Email != nil && *req.Email != user.Email {
			if err := ensureEmailFree(tx, *req.Email, id); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(user).Updates(updates).Error; err != nil {
			return err
		}
		user, err = findUser(tx, id)
		return err
	})
	if err != nil {
		return nil, s.wrap("update user", err)
	}

	view := types.NewUserView(*user)
	return &view, nil
}

// Delete removes the user together with the recipes and products they own.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(forUpdate(tx), id); err != nil {
			return err
		}
		if err := tx.Where("recipe_id IN (SELECT id FROM recipes WHERE user_id = ?)", id).
			Delete(&models.RecipeProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
	if err != nil {
		return s.wrap("delete user", err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

// wrap passes domain errors through and logs storage failures.
func (s *UserService) wrap(op string, err error) error {
	return wrapStorage(s.logger, op, err)
}

func findUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func userExists(db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func ensureEmailFree(db *gorm.DB, email string, except uuid.UUID) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, except).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return badRequest(MsgEmailInUse)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
