package auth

import (
	"context"

	"github.com/goliatone/go-tenant-auth/middleware/gateware"
)

// ContextEnricherAdapter adapts gateware.AuthClaims to auth.AuthClaims and
// stores them in the standard context for downstream usage.
func ContextEnricherAdapter(c context.Context, claims gateware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}

// GateTokenValidator adapts a root TokenValidator into the gateware interface.
func GateTokenValidator(v TokenValidator) gateware.TokenValidator {
	return gateware.TokenValidatorFunc(func(tokenString string) (gateware.AuthClaims, error) {
		claims, err := v.Validate(tokenString)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}
