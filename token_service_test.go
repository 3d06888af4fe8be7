package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-tenant-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(expirationHours int) auth.TokenService {
	return auth.NewTokenService(
		[]byte("test-signing-key"),
		expirationHours,
		"test-issuer",
		jwt.ClaimStrings{"test-audience"},
		nil,
	)
}

func newTestTokenServiceWithKey(key string) auth.TokenService {
	return auth.NewTokenService(
		[]byte(key),
		24,
		"test-issuer",
		jwt.ClaimStrings{"test-audience"},
		nil,
	)
}

func TestNewTokenService(t *testing.T) {
	t.Run("creates token service with nil logger", func(t *testing.T) {
		service := newTestTokenService(24)
		assert.NotNil(t, service)
	})
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	service := newTestTokenService(24)

	user := &auth.AuthUser{
		Email:    "ada@example.com",
		Role:     auth.RoleAdministrator,
		MasterID: "tenant-1",
	}

	token, err := service.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	// the exact bundle that was issued comes back
	assert.Equal(t, "ada@example.com", claims.Email())
	assert.Equal(t, auth.RoleAdministrator, claims.Role())
	assert.Equal(t, "tenant-1", claims.MasterID())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expires(), time.Minute)
}

func TestTokenService_GenerateNilUser(t *testing.T) {
	service := newTestTokenService(24)

	_, err := service.Generate(nil)
	assert.Error(t, err)
}

func TestTokenService_ValidateFailures(t *testing.T) {
	service := newTestTokenService(24)

	user := &auth.AuthUser{Email: "ada@example.com", Role: auth.RoleTeacher, MasterID: "tenant-1"}

	token, err := service.Generate(user)
	require.NoError(t, err)

	t.Run("expired token", func(t *testing.T) {
		expiredService := newTestTokenService(-1)

		expired, err := expiredService.Generate(user)
		require.NoError(t, err)

		_, err = service.Validate(expired)
		assert.Error(t, err)
		assert.True(t, auth.IsTokenExpiredError(err))
	})

	t.Run("tampered token", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		tampered := parts[0] + "." + parts[1] + "x." + parts[2]

		_, err := service.Validate(tampered)
		assert.Error(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := auth.NewTokenService([]byte("other-key"), 24, "test-issuer", jwt.ClaimStrings{"test-audience"}, nil)

		otherToken, err := other.Generate(user)
		require.NoError(t, err)

		_, err = service.Validate(otherToken)
		assert.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := auth.NewTokenService([]byte("test-signing-key"), 24, "other-issuer", jwt.ClaimStrings{"test-audience"}, nil)

		otherToken, err := other.Generate(user)
		require.NoError(t, err)

		_, err = service.Validate(otherToken)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.Validate("not.a.token")
		assert.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("unsigned algorithm rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"email": "ada@example.com",
			"role":  "master",
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Validate(raw)
		assert.Error(t, err)
	})
}

func TestTokenService_SignClaimsNil(t *testing.T) {
	service := newTestTokenService(24)

	_, err := service.SignClaims(nil)
	assert.Error(t, err)
}
