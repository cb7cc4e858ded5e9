package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvracar/scribe/internal/auth"
	"github.com/stretchr/testify/require"
)

func decodeAuthError(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Errors["authorize"]
}

func TestIdentify_NoHeaderPassesThroughAnonymous(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	var reached bool
	handler := Identify(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		_, ok := UserID(r.Context())
		require.False(t, ok, "no identity should be attached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentify_ValidTokenAttachesIdentity(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()
	token, err := tokens.Sign(userID)
	require.NoError(t, err)

	var got uuid.UUID
	handler := Identify(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		require.True(t, ok)
		got = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, userID, got)
}

func TestIdentify_InvalidTokenRejectsRequest(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	handler := Identify(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an unverifiable token")
	}))

	for _, header := range []string{
		"Bearer garbage",
		"Bearer",          // no token segment
		"Token a.b.c",     // malformed JWT
		"bare-token-only", // scheme without token
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		require.Equal(t, []string{"token error"}, decodeAuthError(t, rec))
	}
}

func TestIdentify_ExpiredTokenRejectsRequest(t *testing.T) {
	expired := auth.NewTokenService("test-secret", -time.Minute)
	token, err := expired.Sign(uuid.New())
	require.NoError(t, err)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	handler := Identify(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, []string{"token error"}, decodeAuthError(t, rec))
}

func TestRequireAuth_NoIdentity(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("guarded handler must not run without an identity")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, []string{"need authorization"}, decodeAuthError(t, rec))
}

func TestRequireAuth_WithIdentity(t *testing.T) {
	var reached bool
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, reached)
}
