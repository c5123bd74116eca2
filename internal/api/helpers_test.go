package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/fridge-inventory/backend/internal/middleware"
	"github.com/pageza/fridge-inventory/backend/internal/mocks"
	"github.com/pageza/fridge-inventory/backend/internal/models"
	"github.com/pageza/fridge-inventory/backend/internal/service"
	"github.com/pageza/fridge-inventory/backend/internal/testhelpers"
)

// testEnv is a router wired to real services over an in-memory database.
// Only the suggestion generator is mocked.
type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	auth      *service.AuthService
	generator *mocks.MockGenerator
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	logger := zap.NewNop()
	generator := new(mocks.MockGenerator)
	auth := service.NewAuthService(db, "test-secret", time.Hour)

	router := gin.New()
	SetupAPI(router, Services{
		Auth:     auth,
		Users:    service.NewUserService(db, logger),
		Products: service.NewProductService(db, logger),
		Recipes:  service.NewRecipeService(db, generator, 5*time.Second, logger),
	})
	NewHealthHandler(db).RegisterRoutes(router)

	return &testEnv{router: router, db: db, auth: auth, generator: generator}
}

// tokenFor issues a valid access token for user.
func (e *testEnv) tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := e.auth.GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[middleware.ErrorResponse](t, w).Error
}

func assertStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status %d (%s): %s", w.Code, http.StatusText(w.Code), w.Body.String())
}
