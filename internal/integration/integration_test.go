package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/fridge-inventory/backend/config"
	"github.com/pageza/fridge-inventory/backend/internal/api"
	"github.com/pageza/fridge-inventory/backend/internal/middleware"
	"github.com/pageza/fridge-inventory/backend/internal/mocks"
	"github.com/pageza/fridge-inventory/backend/internal/server"
	"github.com/pageza/fridge-inventory/backend/internal/service"
	"github.com/pageza/fridge-inventory/backend/internal/testhelpers"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) call(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(middleware.TokenHeader, c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	if out != nil && w.Code < 300 && w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
	}
	return w.Code
}

func (c *client) signUp(first, last, email, password string) types.UserView {
	c.t.Helper()
	var user types.UserView
	code := c.call(http.MethodPost, "/api/users", map[string]string{
		"firstName": first, "lastName": last, "email": email, "password": password,
	}, &user)
	require.Equal(c.t, http.StatusCreated, code)
	return user
}

func (c *client) login(email, password string) *client {
	c.t.Helper()
	var resp types.LoginResponse
	code := c.call(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, &resp)
	require.Equal(c.t, http.StatusOK, code)
	return &client{t: c.t, handler: c.handler, token: resp.Token}
}

// TestOfficeFlow walks through a typical day against PostgreSQL: two
// colleagues sign up, fill a fridge, hand products over and plan recipes.
func TestOfficeFlow(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	logger := zap.NewNop()
	generator := new(mocks.MockGenerator)

	cfg := &config.Config{
		ServerHost:  "127.0.0.1",
		ServerPort:  "0",
		CORSOrigins: []string{"http://localhost:5173"},
		JWTSecret:   "integration-secret",
		TokenTTL:    time.Hour,
	}
	srv := server.New(cfg, db, logger, api.Services{
		Auth:     service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL),
		Users:    service.NewUserService(db, logger),
		Products: service.NewProductService(db, logger),
		Recipes:  service.NewRecipeService(db, generator, time.Second, logger),
	})

	anon := &client{t: t, handler: srv.Handler()}
	ada := anon.signUp("Ada", "Lovelace", "ada@example.com", "analytical")
	alan := anon.signUp("Alan", "Turing", "alan@example.com", "enigma-machine")

	adaClient := anon.login("ada@example.com", "analytical")
	alanClient := anon.login("alan@example.com", "enigma-machine")

	fridge := testhelpers.CreateFridge(t, db, "floor2", 10)

	var milk types.ProductView
	require.Equal(t, http.StatusCreated, adaClient.call(http.MethodPost, "/api/products",
		map[string]interface{}{"name": "milk", "space": 6, "fridgeId": fridge.ID}, &milk))
	require.Equal(t, http.StatusCreated, adaClient.call(http.MethodPost, "/api/products",
		map[string]interface{}{"name": "eggs", "space": 2, "fridgeId": fridge.ID}, nil))
	assert.Equal(t, http.StatusBadRequest, alanClient.call(http.MethodPost, "/api/products",
		map[string]interface{}{"name": "watermelon", "space": 3, "fridgeId": fridge.ID}, nil))

	// Ada hands the milk to Alan; it stays in the same fridge.
	var gifted types.ProductView
	require.Equal(t, http.StatusOK, adaClient.call(http.MethodPatch, "/api/products/"+milk.ID.String(),
		map[string]string{"receiverId": alan.ID.String()}, &gifted))
	assert.Equal(t, alan.ID, gifted.UserID)
	assert.Equal(t, fridge.ID, gifted.FridgeID)

	var alansProducts []types.ProductView
	require.Equal(t, http.StatusOK, alanClient.call(http.MethodGet, "/api/products?location=floor2", nil, &alansProducts))
	require.Len(t, alansProducts, 1)
	assert.Equal(t, "milk", alansProducts[0].Name)

	var recipe types.RecipeView
	require.Equal(t, http.StatusCreated, alanClient.call(http.MethodPost, "/api/recipes", map[string]interface{}{
		"name":         "Pancakes",
		"description":  "Fluffy",
		"productNames": []string{"flour", "milk", "eggs"},
	}, &recipe))

	var missing []string
	require.Equal(t, http.StatusOK, alanClient.call(http.MethodGet, "/api/recipes/"+recipe.ID.String()+"/missing", nil, &missing))
	assert.Equal(t, []string{"flour", "eggs"}, missing)

	generator.On("Generate", mock.Anything, []string{"milk"}).
		Return([]types.RecipeSuggestion{{Name: "Hot milk", Description: "Warm it up", ProductNames: []string{"milk"}}}, nil).Once()
	var suggestions []types.RecipeSuggestion
	require.Equal(t, http.StatusOK, alanClient.call(http.MethodGet, "/api/recipes/"+uuid.NewString()+"/suggestions", nil, &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Hot milk", suggestions[0].Name)

	// Ada leaves; her remaining products go with her and her token stops working.
	require.Equal(t, http.StatusNoContent, alanClient.call(http.MethodDelete, "/api/users/"+ada.ID.String(), nil, nil))
	assert.Equal(t, http.StatusUnauthorized, adaClient.call(http.MethodGet, "/api/products", nil, nil))

	var remaining []types.ProductView
	require.Equal(t, http.StatusOK, alanClient.call(http.MethodGet, "/api/products", nil, &remaining))
	assert.Len(t, remaining, 1)

	generator.AssertExpectations(t)
}
