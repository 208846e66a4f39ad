package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetverse/models"
	"assetverse/utils"
)

func newTestAuth(t *testing.T) (*Authenticator, *utils.TokenIssuer) {
	t.Helper()
	tokens := utils.NewTokenIssuer([]byte("test-key"), time.Hour)
	return NewAuthenticator(tokens), tokens
}

func TestAuthenticateMissingHeader(t *testing.T) {
	auth, _ := newTestAuth(t)

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/assets/hr", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	auth, _ := newTestAuth(t)

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/assets/hr", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateStoresPrincipal(t *testing.T) {
	auth, tokens := newTestAuth(t)

	want := models.Principal{ID: "1", Email: "hr@acme.com", Name: "Dana", Role: models.RoleHR}
	token, err := tokens.Generate(want)
	require.NoError(t, err)

	var got models.Principal
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		require.True(t, ok)
		got = p
	}))

	req := httptest.NewRequest("GET", "/assets/hr", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, got)
}

func TestRequireRole(t *testing.T) {
	reached := false
	guard := RequireRole(models.RoleHR)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	// No principal at all.
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	// Wrong role.
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithPrincipal(req.Context(), models.Principal{Email: "e@x.com", Role: models.RoleEmployee}))
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Allowed role.
	req = httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithPrincipal(req.Context(), models.Principal{Email: "hr@x.com", Role: models.RoleHR}))
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
