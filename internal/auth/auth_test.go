package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-showtimes/internal/config"
)

func TestAuthMiddlewarePutsCallerIDInContext(t *testing.T) {
	cfg := config.Config{SkillSecret: testSecret}
	tokenString := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "voice-skill",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	var callerID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetCallerIDFromContext(r.Context())
		require.NoError(t, err)
		callerID = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/api/showtimes/v1/find-seats", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	recorder := httptest.NewRecorder()

	AuthMiddleware(cfg)(next).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "voice-skill", callerID)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := config.Config{SkillSecret: testSecret}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest("POST", "/api/showtimes/v1/find-seats", nil)
	recorder := httptest.NewRecorder()

	AuthMiddleware(cfg)(next).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminMiddlewareRequiresAdminRole(t *testing.T) {
	cfg := config.Config{SkillSecret: testSecret}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	viewerToken := signedToken(t, testSecret, jwt.MapClaims{"sub": "voice-skill", "role": "viewer"})
	req := httptest.NewRequest("GET", "/api/showtimes/v1/admin/query-stats", nil)
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	recorder := httptest.NewRecorder()
	AdminMiddleware(cfg)(next).ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	adminToken := signedToken(t, testSecret, jwt.MapClaims{"sub": "voice-skill", "role": "admin"})
	req = httptest.NewRequest("GET", "/api/showtimes/v1/admin/query-stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	recorder = httptest.NewRecorder()
	AdminMiddleware(cfg)(next).ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetCallerIDFromContextMissing(t *testing.T) {
	_, err := GetCallerIDFromContext(context.Background())
	assert.Error(t, err)
}
