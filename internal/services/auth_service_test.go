package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"souq_backend/internal/auth"
	"souq_backend/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(profile *provider.Profile, providerErr error) (AuthService, *fakeUserRepo, *auth.TokenManager) {
	userRepo := newFakeUserRepo()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(userRepo, &fakeProviderClient{profile: profile, err: providerErr}, tokens)
	return svc, userRepo, tokens
}

func testProfile() *provider.Profile {
	return &provider.Profile{
		Subject:     "subject-42",
		DisplayName: "Jane Roe",
		Email:       "jane@example.com",
	}
}

func TestCallbackCreatesUserOnFirstLogin(t *testing.T) {
	t.Parallel()
	svc, userRepo, tokens := newAuthFixture(testProfile(), nil)

	token, user, err := svc.HandleCallback(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "subject-42", user.ProviderID)
	assert.Equal(t, "Jane Roe", user.DisplayName)
	assert.Equal(t, "jane@example.com", user.Email)

	// The schema-required hash is a real bcrypt hash of a generated
	// credential, never a usable password.
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(""))
	assert.Error(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	stored, err := userRepo.FindByProviderID("subject-42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestCallbackReusesExistingUser(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newAuthFixture(testProfile(), nil)
	ctx := context.Background()

	_, first, err := svc.HandleCallback(ctx, "code-1")
	require.NoError(t, err)

	_, second, err := svc.HandleCallback(ctx, "code-2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	users, err := userRepo.FindAll()
	require.NoError(t, err)
	assert.Len(t, users, 1, "at most one record per provider subject id")
}

func TestCallbackProviderFailure(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newAuthFixture(nil, errors.New("exchange failed"))

	_, _, err := svc.HandleCallback(context.Background(), "bad-code")
	require.Error(t, err)

	users, err := userRepo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, users, "no user may be created on a failed login")
}

func TestLoginURLCarriesState(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture(testProfile(), nil)
	assert.Contains(t, svc.LoginURL("state-xyz"), "state-xyz")
}
