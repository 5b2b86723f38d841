package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/pkg/iam/auth"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

func TestJWTTokenService(t *testing.T) {
	svc := auth.NewJWTTokenService("test-secret", "sift", time.Hour)

	t.Run("roundtrip preserves identity and scopes", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(
			kernel.NewUserID("user-1"),
			kernel.Email("jane@example.com"),
			auth.DefaultRecruiterScopes,
		)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, kernel.NewUserID("user-1"), claims.UserID)
		assert.Equal(t, kernel.Email("jane@example.com"), claims.Email)
		assert.Equal(t, auth.DefaultRecruiterScopes, claims.Scopes)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := auth.NewJWTTokenService("other-secret", "sift", time.Hour)
		token, err := other.GenerateAccessToken(kernel.NewUserID("user-1"), "jane@example.com", nil)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := auth.NewJWTTokenService("test-secret", "sift", -time.Minute)
		token, err := expired.GenerateAccessToken(kernel.NewUserID("user-1"), "jane@example.com", nil)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects tokens from another issuer", func(t *testing.T) {
		foreign := auth.NewJWTTokenService("test-secret", "someone-else", time.Hour)
		token, err := foreign.GenerateAccessToken(kernel.NewUserID("user-1"), "jane@example.com", nil)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestBcryptPasswordService(t *testing.T) {
	svc := auth.NewBcryptPasswordService()

	hash, err := svc.Hash("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	assert.NoError(t, svc.Verify("hunter22", hash))
	assert.Error(t, svc.Verify("wrong", hash))
}
