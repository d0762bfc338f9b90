package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/auth"
	"github.com/sysgest/insights-api/internal/domain"
	"go.uber.org/zap"
)

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(user.Email))
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	m := newManager(t, "test-secret")
	token, _, err := m.IssueToken(testUser())
	require.NoError(t, err)

	mw := auth.NewMiddleware(m, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@sysgest.com.br", rec.Body.String())
}

func TestAuthenticate_RejectsMissingAndMalformedHeaders(t *testing.T) {
	m := newManager(t, "test-secret")
	mw := auth.NewMiddleware(m, zap.NewNop())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	cases := map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc123",
		"bogus token":  "Bearer not-a-jwt",
		"wrong secret": "Bearer " + issueWith(t, "other-secret"),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(next).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func issueWith(t *testing.T, secret string) string {
	t.Helper()
	token, _, err := newManager(t, secret).IssueToken(testUser())
	require.NoError(t, err)
	return token
}

func TestRequireAdmin(t *testing.T) {
	mw := auth.NewMiddleware(newManager(t, "test-secret"), zap.NewNop())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	viewer := &auth.UserContext{UserID: uuid.New(), Role: domain.RoleViewer}
	req := httptest.NewRequest(http.MethodDelete, "/users/x", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), viewer))
	rec := httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := &auth.UserContext{UserID: uuid.New(), Role: domain.RoleAdmin}
	req = httptest.NewRequest(http.MethodDelete, "/users/x", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), admin))
	rec = httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
