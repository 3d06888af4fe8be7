package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenService issues and verifies signed, expiring claim bundles
type TokenService interface {
	TokenValidator
	Generate(user *AuthUser) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetTokenLookup() string
	GetAuthScheme() string
}

// IdentityStore owns the AuthUser collection. Create treats check-then-insert
// as one atomic unit; Update and Delete serialize against concurrent
// mutations of the same email.
type IdentityStore interface {
	Find(ctx context.Context, email string) (*AuthUser, error)
	Create(ctx context.Context, user AuthUser) (string, error)
	Update(ctx context.Context, user AuthUser, email string) (*AuthUser, error)
	Delete(ctx context.Context, email string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
