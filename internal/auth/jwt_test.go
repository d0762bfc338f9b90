package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/auth"
	"github.com/sysgest/insights-api/internal/config"
	"github.com/sysgest/insights-api/internal/domain"
)

func newManager(t *testing.T, secret string) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: secret,
		Issuer:    "sysgest-insights",
		TokenTTL:  60,
	})
	require.NoError(t, err)
	return m
}

func testUser() *domain.User {
	u := &domain.User{
		Email: "ana@sysgest.com.br",
		Name:  "Ana",
		Role:  domain.RoleAdmin,
	}
	u.ID = uuid.New()
	return u
}

func TestTokenRoundTrip(t *testing.T) {
	m := newManager(t, "test-secret")
	user := testUser()

	token, expiresAt, err := m.IssueToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	ctx, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ctx.UserID)
	assert.Equal(t, "ana@sysgest.com.br", ctx.Email)
	assert.Equal(t, domain.RoleAdmin, ctx.Role)
	assert.True(t, ctx.IsAdmin())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newManager(t, "secret-a")
	verifier := newManager(t, "secret-b")

	token, _, err := issuer.IssueToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	other, err := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "someone-else",
		TokenTTL:  60,
	})
	require.NoError(t, err)

	token, _, err := other.IssueToken(testUser())
	require.NoError(t, err)

	m := newManager(t, "test-secret")
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager(&config.AuthConfig{Issuer: "x", TokenTTL: 60})
	assert.Error(t, err)
}
