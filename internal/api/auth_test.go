package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/fridge-inventory/backend/internal/service"
	"github.com/pageza/fridge-inventory/backend/internal/testhelpers"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateUser(t, env.db, "Ada", "Lovelace", "ada@example.com")

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid credentials",
			body:       map[string]interface{}{"email": "ada@example.com", "password": testhelpers.DefaultPassword},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       map[string]interface{}{"email": "ada@example.com", "password": "not-the-password"},
			wantStatus: http.StatusUnauthorized,
			wantError:  service.MsgInvalidCredentials,
		},
		{
			name:       "unknown email",
			body:       map[string]interface{}{"email": "nobody@example.com", "password": testhelpers.DefaultPassword},
			wantStatus: http.StatusUnauthorized,
			wantError:  service.MsgInvalidCredentials,
		},
		{
			name:       "malformed email",
			body:       map[string]interface{}{"email": "not-an-email", "password": testhelpers.DefaultPassword},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       map[string]interface{}{"email": "ada@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/login", tt.body, "")
			assertStatus(t, tt.wantStatus, w)

			if tt.wantStatus == http.StatusOK {
				resp := decode[types.LoginResponse](t, w)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, 3600, resp.ExpiresIn)
				return
			}
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorMessage(t, w))
			}
		})
	}
}

func TestLoginTokenGrantsAccess(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateUser(t, env.db, "Ada", "Lovelace", "ada@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": testhelpers.DefaultPassword,
	}, "")
	assertStatus(t, http.StatusOK, w)
	token := decode[types.LoginResponse](t, w).Token

	w = env.do(t, http.MethodGet, "/api/users", nil, token)
	assertStatus(t, http.StatusOK, w)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupTestEnv(t)
	user := testhelpers.CreateUser(t, env.db, "Ada", "Lovelace", "ada@example.com")

	t.Run("missing token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/products", nil, "")
		assertStatus(t, http.StatusUnauthorized, w)
		assert.Equal(t, service.MsgTokenNotProvided, errorMessage(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/recipes", nil, "not-a-jwt")
		assertStatus(t, http.StatusUnauthorized, w)
		assert.Equal(t, service.MsgInvalidToken, errorMessage(t, w))
	})

	t.Run("deleted user", func(t *testing.T) {
		token := env.tokenFor(t, user)
		w := env.do(t, http.MethodDelete, "/api/users/"+user.ID.String(), nil, token)
		assertStatus(t, http.StatusNoContent, w)

		w = env.do(t, http.MethodGet, "/api/users", nil, token)
		assertStatus(t, http.StatusUnauthorized, w)
		assert.Equal(t, service.MsgUserGone, errorMessage(t, w))
	})
}
