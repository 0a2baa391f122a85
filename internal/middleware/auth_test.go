package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casemate-ai/casemate-gateway/internal/auth"
)

type fakeVerifier struct {
	identity *auth.Identity
	err      error
	token    string
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func authTestHandler(called *bool, gotUID, gotEmail *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*gotUID = GetUserID(r.Context())
		*gotEmail = GetEmail(r.Context())
	})
}

func TestAuthMissingHeader(t *testing.T) {
	called := false
	var uid, email string
	handler := Auth(&fakeVerifier{})(authTestHandler(&called, &uid, &email))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.False(t, called)
}

func TestAuthMalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "no token", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var uid, email string
			handler := Auth(&fakeVerifier{})(authTestHandler(&called, &uid, &email))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.False(t, called)
		})
	}
}

func TestAuthInvalidToken(t *testing.T) {
	called := false
	var uid, email string
	verifier := &fakeVerifier{err: auth.ErrInvalidToken}
	handler := Auth(verifier)(authTestHandler(&called, &uid, &email))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "expired-token", verifier.token)
	assert.False(t, called)
}

func TestAuthValidToken(t *testing.T) {
	called := false
	var uid, email string
	verifier := &fakeVerifier{identity: &auth.Identity{UID: "user-1", Email: "user@example.com"}}
	handler := Auth(verifier)(authTestHandler(&called, &uid, &email))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", uid)
	assert.Equal(t, "user@example.com", email)
	assert.Equal(t, "good-token", verifier.token)
}

func TestAuthSchemeCaseInsensitive(t *testing.T) {
	called := false
	var uid, email string
	verifier := &fakeVerifier{identity: &auth.Identity{UID: "user-1"}}
	handler := Auth(verifier)(authTestHandler(&called, &uid, &email))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
}
