package service

import (
	"context"
	"strings"
	"testing"

	"intellichat-be/internal/identity"
	"intellichat-be/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (IAuthService, repository.Factory) {
	repos := repository.NewMemoryFactory()
	svc := NewAuthService(identity.NewStubProvider(), NewUserService(repos), "test-secret")
	return svc, repos
}

func TestGetLoginURL(t *testing.T) {
	svc, _ := newTestAuthService()

	res, err := svc.GetLoginURL()
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Contains(t, res.URL, "state=")

	// Each call carries a fresh state token.
	again, err := svc.GetLoginURL()
	require.NoError(t, err)
	assert.NotEqual(t, res.URL, again.URL)
}

func TestHandleCallback(t *testing.T) {
	svc, repos := newTestAuthService()
	ctx := context.Background()

	res, err := svc.HandleCallback(ctx, "demo")
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "demo-user", res.User.UID)
	require.NotEmpty(t, res.Token)

	// The token is a valid HS256 JWT carrying the account id.
	token, err := jwt.Parse(res.Token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "demo-user", claims["user_id"])

	// The local user row was created on first reference.
	user, err := repos.UserRepository().FindByUsername(ctx, "demo-user")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"))
}
