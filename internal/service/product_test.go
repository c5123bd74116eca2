package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/fridge-inventory/backend/internal/models"
	"github.com/pageza/fridge-inventory/backend/internal/service"
	"github.com/pageza/fridge-inventory/backend/internal/testhelpers"
)

func TestProductCreateRespectsCapacity(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	products := service.NewProductService(db, zap.NewNop())
	fridges := service.NewFridgeService(db, zap.NewNop())
	ctx := context.Background()

	user := testhelpers.CreateUser(t, db, "Ada", "Lovelace", "ada@example.com")
	fridge := testhelpers.CreateFridge(t, db, "floor1", 10)

	_, err := products.Create(ctx, user.ID, "milk", 7, fridge.ID)
	require.NoError(t, err)

	_, err = products.Create(ctx, user.ID, "cheese", 4, fridge.ID)
	assert.ErrorIs(t, err, service.ErrBadRequest)
	assert.Equal(t, service.MsgNoCapacity, messageOf(t, err))

	_, err = products.Create(ctx, user.ID, "butter", 3, fridge.ID)
	require.NoError(t, err)

	used, err := fridges.Usage(ctx, fridge.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, used)

	_, err = products.Create(ctx, user.ID, "eggs", 1, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, service.MsgFridgeNotFound, messageOf(t, err))

	_, err = products.Create(ctx, user.ID, "air", 0, fridge.ID)
	assert.ErrorIs(t, err, service.ErrBadRequest)
}

func TestProductGift(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	products := service.NewProductService(db, zap.NewNop())
	ctx := context.Background()

	giver := testhelpers.CreateUser(t, db, "Ada", "Lovelace", "ada@example.com")
	receiver := testhelpers.CreateUser(t, db, "Alan", "Turing", "alan@example.com")
	fridge := testhelpers.CreateFridge(t, db, "floor1", 10)
	product := testhelpers.CreateProduct(t, db, giver, fridge, "milk", 2)

	tests := []struct {
		name       string
		productID  uuid.UUID
		ownerID    uuid.UUID
		receiverID uuid.UUID
		wantKind   error
		wantMsg    string
	}{
		{name: "self", productID: product.ID, ownerID: giver.ID, receiverID: giver.ID, wantKind: service.ErrBadRequest, wantMsg: service.MsgSelfGift},
		{name: "missing product", productID: uuid.New(), ownerID: giver.ID, receiverID: receiver.ID, wantKind: service.ErrNotFound, wantMsg: service.MsgProductNotFound},
		{name: "not owner", productID: product.ID, ownerID: receiver.ID, receiverID: giver.ID, wantKind: service.ErrForbidden, wantMsg: service.MsgNotProductOwner},
		{name: "missing receiver", productID: product.ID, ownerID: giver.ID, receiverID: uuid.New(), wantKind: service.ErrNotFound, wantMsg: service.MsgReceiverNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := products.Gift(ctx, tt.productID, tt.ownerID, tt.receiverID)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, tt.wantMsg, messageOf(t, err))
		})
	}

	view, err := products.Gift(ctx, product.ID, giver.ID, receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, receiver.ID, view.UserID)
	assert.Equal(t, fridge.ID, view.FridgeID)

	stored, err := products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, receiver.ID, stored.UserID)
}

func TestProductFilters(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	products := service.NewProductService(db, zap.NewNop())
	ctx := context.Background()

	ada := testhelpers.CreateUser(t, db, "Ada", "Lovelace", "ada@example.com")
	alan := testhelpers.CreateUser(t, db, "Alan", "Turing", "alan@example.com")
	first := testhelpers.CreateFridge(t, db, "floor1", 100)
	second := testhelpers.CreateFridge(t, db, "floor2", 100)
	third := testhelpers.CreateFridge(t, db, "floor2", 100)
	testhelpers.CreateProduct(t, db, ada, first, "eggs", 1)
	testhelpers.CreateProduct(t, db, ada, second, "milk", 1)
	testhelpers.CreateProduct(t, db, ada, third, "jam", 1)
	testhelpers.CreateProduct(t, db, alan, second, "beer", 1)

	names := func(filter service.ProductFilter) []string {
		t.Helper()
		views, err := products.List(ctx, ada.ID, filter)
		require.NoError(t, err)
		out := make([]string, 0, len(views))
		for _, v := range views {
			out = append(out, v.Name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"eggs", "milk", "jam"}, names(service.ProductFilter{}))
	assert.ElementsMatch(t, []string{"milk"}, names(service.ProductFilter{FridgeID: &second.ID}))
	assert.ElementsMatch(t, []string{"milk", "jam"}, names(service.ProductFilter{Location: "floor2"}))
	assert.Empty(t, names(service.ProductFilter{Location: "roof"}))

	both := service.ProductFilter{FridgeID: &second.ID, Location: "floor2"}
	_, err := products.List(ctx, ada.ID, both)
	assert.Equal(t, service.MsgBothFilters, messageOf(t, err))
	assert.Equal(t, service.MsgBothFilters, messageOf(t, products.GiftList(ctx, ada.ID, alan.ID, both)))
	assert.Equal(t, service.MsgBothFilters, messageOf(t, products.DeleteList(ctx, ada.ID, both)))
}

func TestProductGiftList(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	products := service.NewProductService(db, zap.NewNop())
	ctx := context.Background()

	ada := testhelpers.CreateUser(t, db, "Ada", "Lovelace", "ada@example.com")
	alan := testhelpers.CreateUser(t, db, "Alan", "Turing", "alan@example.com")
	first := testhelpers.CreateFridge(t, db, "floor1", 100)
	second := testhelpers.CreateFridge(t, db, "floor2", 100)
	testhelpers.CreateProduct(t, db, ada, first, "eggs", 1)
	testhelpers.CreateProduct(t, db, ada, second, "milk", 1)
	testhelpers.CreateProduct(t, db, ada, second, "jam", 1)

	err := products.GiftList(ctx, ada.ID, ada.ID, service.ProductFilter{})
	assert.Equal(t, service.MsgSelfGift, messageOf(t, err))

	err = products.GiftList(ctx, ada.ID, uuid.New(), service.ProductFilter{})
	assert.Equal(t, service.MsgReceiverNotFound, messageOf(t, err))

	require.NoError(t, products.GiftList(ctx, ada.ID, alan.ID, service.ProductFilter{FridgeID: &second.ID}))

	received, err := products.List(ctx, alan.ID, service.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, received, 2)

	kept, err := products.List(ctx, ada.ID, service.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "eggs", kept[0].Name)

	// nothing left to give is not an error
	require.NoError(t, products.GiftList(ctx, ada.ID, alan.ID, service.ProductFilter{Location: "floor2"}))
}

func TestProductDelete(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	products := service.NewProductService(db, zap.NewNop())
	ctx := context.Background()

	ada := testhelpers.CreateUser(t, db, "Ada", "Lovelace", "ada@example.com")
	alan := testhelpers.CreateUser(t, db, "Alan", "Turing", "alan@example.com")
	fridge := testhelpers.CreateFridge(t, db, "floor1", 100)
	mine := testhelpers.CreateProduct(t, db, ada, fridge, "eggs", 1)
	theirs := testhelpers.CreateProduct(t, db, alan, fridge, "beer", 1)
	testhelpers.CreateProduct(t, db, ada, fridge, "milk", 1)

	err := products.Delete(ctx, theirs.ID, ada.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	require.NoError(t, products.Delete(ctx, mine.ID, ada.ID))
	err = products.Delete(ctx, mine.ID, ada.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, products.DeleteList(ctx, ada.ID, service.ProductFilter{Location: "floor1"}))

	var remaining []models.Product
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, theirs.ID, remaining[0].ID)
}

// Concurrent inserts into the same fridge must never overshoot its capacity.
func TestProductCreateConcurrentPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	products := service.NewProductService(db, zap.NewNop())
	fridges := service.NewFridgeService(db, zap.NewNop())
	ctx := context.Background()

	user := testhelpers.CreateUser(t, db, "Ada", "Lovelace", "ada@example.com")
	fridge := testhelpers.CreateFridge(t, db, "floor1", 10)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := products.Create(ctx, user.ID, "box", 3, fridge.ID)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, service.ErrBadRequest)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	used, err := fridges.Usage(ctx, fridge.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, used)
}
