package auth

import (
	"github.com/gofiber/fiber/v2"
)

// ClaimsFromFiber reads the decoded claims the admission gate stored under
// key, for handlers running on a fiber-backed router.
func ClaimsFromFiber(c *fiber.Ctx, key string) (AuthClaims, error) {
	raw := c.Locals(key)
	if raw == nil {
		return nil, ErrUnableToFindClaims
	}

	claims, ok := raw.(AuthClaims)
	if !ok {
		return nil, ErrUnableToDecodeClaims
	}

	return claims, nil
}
