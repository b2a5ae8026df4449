package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukujayCS/Apartment-Hunter/internal/service"
)

func TestRequireSession(t *testing.T) {
	authSvc := service.NewAuthService("test-secret")
	mw := NewAuthMiddleware(authSvc)

	var gotSessionID string
	protected := mw.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSessionID = GetSessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/categories", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := service.NewAuthService("different-secret").CreateSession()
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
		req.Header.Set("Authorization", "Bearer "+other.Token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		session, err := authSvc.CreateSession()
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
		req.Header.Set("Authorization", "Bearer "+session.Token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, session.SessionID, gotSessionID)
	})
}
