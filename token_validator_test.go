package auth_test

import (
	"testing"

	"github.com/goliatone/go-tenant-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidatorFunc(t *testing.T) {
	var f auth.TokenValidatorFunc

	_, err := f.Validate("anything")
	assert.Error(t, err)
}

func TestMultiTokenValidator(t *testing.T) {
	service := newTestTokenService(24)
	other := newTestTokenServiceWithKey("other-key")

	user := &auth.AuthUser{Email: "ada@example.com", Role: auth.RoleMaster}

	token, err := other.Generate(user)
	require.NoError(t, err)

	t.Run("falls through malformed to the next validator", func(t *testing.T) {
		multi := auth.NewMultiTokenValidator(service, other)

		claims, err := multi.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", claims.Email())
	})

	t.Run("expired stops the chain", func(t *testing.T) {
		expired, err := newTestTokenService(-1).Generate(user)
		require.NoError(t, err)

		multi := auth.NewMultiTokenValidator(service, other)

		_, err = multi.Validate(expired)
		assert.True(t, auth.IsTokenExpiredError(err))
	})

	t.Run("all malformed returns the last error", func(t *testing.T) {
		multi := auth.NewMultiTokenValidator(service, nil)

		_, err := multi.Validate("garbage")
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("no validators", func(t *testing.T) {
		multi := auth.NewMultiTokenValidator()

		_, err := multi.Validate(token)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})
}
