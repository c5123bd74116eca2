package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/fridge-inventory/backend/internal/models"
)

// FridgeService manages the fridge reference data used by seeding and product placement.
type FridgeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewFridgeService(db *gorm.DB, logger *zap.Logger) *FridgeService {
	return &FridgeService{db: db, logger: logger}
}

func (s *FridgeService) Create(ctx context.Context, location string, capacity int) (*models.Fridge, error) {
	if capacity < 0 {
		return nil, badRequest("Capacity must not be negative")
	}
	fridge := models.Fridge{
		ID:       uuid.New(),
		Location: location,
		Capacity: capacity,
	}
	if err := s.db.WithContext(ctx).Create(&fridge).Error; err != nil {
		return nil, wrapStorage(s.logger, "create fridge", err)
	}
	return &fridge, nil
}

func (s *FridgeService) Get(ctx context.Context, id uuid.UUID) (*models.Fridge, error) {
	fridge, err := findFridge(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, wrapStorage(s.logger, "get fridge", err)
	}
	return fridge, nil
}

func (s *FridgeService) List(ctx context.Context) ([]models.Fridge, error) {
	var fridges []models.Fridge
	if err := s.db.WithContext(ctx).Order("location, capacity DESC, id").Find(&fridges).Error; err != nil {
		return nil, wrapStorage(s.logger, "list fridges", err)
	}
	return fridges, nil
}

// Usage returns the space taken by all products stored in the fridge.
func (s *FridgeService) Usage(ctx context.Context, id uuid.UUID) (int, error) {
	used, err := fridgeUsage(s.db.WithContext(ctx), id)
	if err != nil {
		return 0, wrapStorage(s.logger, "compute fridge usage", err)
	}
	return used, nil
}

// DeleteAll removes every fridge and the products stored in them.
func (s *FridgeService) DeleteAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Fridge{}).Error
	})
	if err != nil {
		return wrapStorage(s.logger, "delete fridges", err)
	}
	return nil
}

func findFridge(db *gorm.DB, id uuid.UUID) (*models.Fridge, error) {
	var fridge models.Fridge
	if err := db.First(&fridge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgFridgeNotFound)
		}
		return nil, err
	}
	return &fridge, nil
}

func fridgeUsage(db *gorm.DB, id uuid.UUID) (int, error) {
	var used int
	err := db.Model(&models.Product{}).
		Select("COALESCE(SUM(space), 0)").
		Where("fridge_id = ?", id).
		Scan(&used).Error
	return used, err
}
