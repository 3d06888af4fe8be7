package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-tenant-auth"
	"github.com/stretchr/testify/assert"
)

func TestJWTClaims_Accessors(t *testing.T) {
	now := time.Now()

	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ada@example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserEmail: "ada@example.com",
		UserRole:  auth.RoleAdministrator,
		TenantID:  "tenant-1",
	}

	assert.Equal(t, "ada@example.com", claims.Subject())
	assert.Equal(t, "ada@example.com", claims.Email())
	assert.Equal(t, auth.RoleAdministrator, claims.Role())
	assert.Equal(t, "tenant-1", claims.MasterID())
	assert.WithinDuration(t, now.Add(time.Hour), claims.Expires(), time.Second)
	assert.WithinDuration(t, now, claims.IssuedAt(), time.Second)
}

func TestJWTClaims_EmailFallsBackToSubject(t *testing.T) {
	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ada@example.com"},
	}

	assert.Equal(t, "ada@example.com", claims.Email())
}

func TestJWTClaims_RoleChecks(t *testing.T) {
	claims := &auth.JWTClaims{UserRole: auth.RoleAdministrator}

	assert.True(t, claims.HasRole(auth.RoleAdministrator))
	assert.False(t, claims.HasRole(auth.RoleMaster))

	assert.True(t, claims.IsAtLeast(auth.RoleTeacher))
	assert.True(t, claims.IsAtLeast(auth.RoleAdministrator))
	assert.False(t, claims.IsAtLeast(auth.RoleMaster))
}

func TestJWTClaims_ZeroTimes(t *testing.T) {
	claims := &auth.JWTClaims{}

	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())
}
