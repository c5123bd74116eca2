package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/fridge-inventory/backend/internal/models"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

// ProductFilter narrows bulk operations to one fridge or to every fridge at a
// location. Setting both is rejected.
type ProductFilter struct {
	FridgeID *uuid.UUID
	Location string
}

func (f ProductFilter) validate() error {
	if f.FridgeID != nil && f.Location != "" {
		return badRequest(MsgBothFilters)
	}
	return nil
}

// scope limits a query to the owner's products matching the filter.
func (f ProductFilter) scope(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)
		switch {
		case f.FridgeID != nil:
			db = db.Where("fridge_id = ?", *f.FridgeID)
		case f.Location != "":
			db = db.Where("fridge_id IN (SELECT id FROM fridges WHERE location = ?)", f.Location)
		}
		return db
	}
}

type ProductService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProductService(db *gorm.DB, logger *zap.Logger) *ProductService {
	return &ProductService{db: db, logger: logger}
}

// Create stores a product in a fridge if the fridge has room for it. The
// fridge row stays locked between the capacity check and the insert.
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, name string, space int, fridgeID uuid.UUID) (*types.ProductView, error) {
	if space <= 0 {
		return nil, badRequest("Space must be positive")
	}

	product := models.Product{
		ID:       uuid.New(),
		Name:     name,
		Space:    space,
		UserID:   userID,
		FridgeID: fridgeID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fridge, err := findFridge(forUpdate(tx), fridgeID)
		if err != nil {
			return err
		}
		used, err := fridgeUsage(tx, fridgeID)
		if err != nil {
			return err
		}
		if used+space > fridge.Capacity {
			return badRequest(MsgNoCapacity)
		}
		return tx.Omit(clause.Associations).Create(&product).Error
	})
	if err != nil {
		return nil, wrapStorage(s.logger, "create product", err)
	}

	view := types.NewProductView(product)
	return &view, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*types.ProductView, error) {
	product, err := findProduct(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, wrapStorage(s.logger, "get product", err)
	}
	view := types.NewProductView(*product)
	return &view, nil
}

func (s *ProductService) List(ctx context.Context, userID uuid.UUID, filter ProductFilter) ([]types.ProductView, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	var products []models.Product
	err := s.db.WithContext(ctx).
		Scopes(filter.scope(userID)).
		Order("created_at, id").
		Find(&products).Error
	if err != nil {
		return nil, wrapStorage(s.logger, "list products", err)
	}

	views := make([]types.ProductView, len(products))
	for i, p := range products {
		views[i] = types.NewProductView(p)
	}
	return views, nil
}

// Gift transfers one product from its owner to receiverID. The product stays in its fridge.
func (s *ProductService) Gift(ctx context.Context, productID, ownerID, receiverID uuid.UUID) (*types.ProductView, error) {
	if ownerID == receiverID {
		return nil, badRequest(MsgSelfGift)
	}

	var product *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if product, err = findProduct(forUpdate(tx), productID); err != nil {
			return err
		}
		if product.UserID != ownerID {
			return forbidden(MsgNotProductOwner)
		}
		if err := ensureReceiver(tx, receiverID); err != nil {
			return err
		}
		if err := tx.Model(product).Update("user_id", receiverID).Error; err != nil {
			return err
		}
		product.UserID = receiverID
		return nil
	})
	if err != nil {
		return nil, wrapStorage(s.logger, "gift product", err)
	}

	s.logger.Info("product gifted",
		zap.String("product_id", productID.String()),
		zap.String("from", ownerID.String()),
		zap.String("to", receiverID.String()),
	)
	view := types.NewProductView(*product)
	return &view, nil
}

// GiftList transfers every matching product of userID to receiverID.
func (s *ProductService) GiftList(ctx context.Context, userID, receiverID uuid.UUID, filter ProductFilter) error {
	if err := filter.validate(); err != nil {
		return err
	}
	if userID == receiverID {
		return badRequest(MsgSelfGift)
	}

	var moved int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReceiver(tx, receiverID); err != nil {
			return err
		}
		res := tx.Model(&models.Product{}).Scopes(filter.scope(userID)).Update("user_id", receiverID)
		moved = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return wrapStorage(s.logger, "gift products", err)
	}

	s.logger.Info("products gifted",
		zap.String("from", userID.String()),
		zap.String("to", receiverID.String()),
		zap.Int64("count", moved),
	)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, productID, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(forUpdate(tx), productID)
		if err != nil {
			return err
		}
		if product.UserID != userID {
			return forbidden(MsgNotProductOwner)
		}
		return tx.Delete(&models.Product{}, "id = ?", productID).Error
	})
	if err != nil {
		return wrapStorage(s.logger, "delete product", err)
	}
	return nil
}

func (s *ProductService) DeleteList(ctx context.Context, userID uuid.UUID, filter ProductFilter) error {
	if err := filter.validate(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Scopes(filter.scope(userID)).Delete(&models.Product{}).Error
	if err != nil {
		return wrapStorage(s.logger, "delete products", err)
	}
	return nil
}

func findProduct(db *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgProductNotFound)
		}
		return nil, err
	}
	return &product, nil
}

func ensureReceiver(db *gorm.DB, id uuid.UUID) error {
	ok, err := userExists(db, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(MsgReceiverNotFound)
	}
	return nil
}
