package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/fridge-inventory/backend/internal/types"
)

// MockGenerator is a mock recipe suggestion generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, productNames []string) ([]types.RecipeSuggestion, error) {
	args := m.Called(ctx, productNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSuggestion), args.Error(1)
}
