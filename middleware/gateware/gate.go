// Package gateware is the per-request admission gate. It extracts a raw
// token from the request, validates it, checks the decoded role against the
// route's allow list, and either forwards the request with decoded claims
// attached or rejects it with a structured JSON response.
package gateware

import (
	"context"
	"log"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

var defaultTokenLookup = "header:" + router.HeaderAuthorization

const (
	textCodeMissingToken   = "MISSING_TOKEN"
	textCodeRoleNotAllowed = "ROLE_NOT_ALLOWED"
)

// ErrMissingToken is returned when no token is present on the request.
var ErrMissingToken = goerrors.New("missing token", goerrors.CategoryAuth).
	WithTextCode(textCodeMissingToken).
	WithCode(goerrors.CodeUnauthorized)

// ErrRoleNotAllowed is returned when the decoded role is not in the allow list.
var ErrRoleNotAllowed = goerrors.New("user does not have access permission", goerrors.CategoryAuthz).
	WithTextCode(textCodeRoleNotAllowed).
	WithCode(goerrors.CodeForbidden)

// TokenValidator interface for validating tokens without import cycles.
// This mirrors the TokenService.Validate method from the auth package.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(tokenString string) (AuthClaims, error)

// Validate satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Validate(tokenString string) (AuthClaims, error) {
	return f(tokenString)
}

// AuthClaims interface for structured claims without import cycles.
// This mirrors the AuthClaims interface from the auth package.
type AuthClaims interface {
	Subject() string
	Email() string
	Role() string
	MasterID() string
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
}

type Config struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	ContextKey     string
	TokenLookup    string
	// AuthScheme is the expected header scheme prefix. It defaults to empty:
	// the Authorization header value is the raw token, no prefix is stripped.
	AuthScheme string
	// TokenValidator is required for token validation
	TokenValidator TokenValidator

	// AllowedRoles admits a request when the decoded role matches any entry.
	// Empty means any authenticated identity passes.
	AllowedRoles []string
	// MinimumRole admits by role hierarchy instead of exact membership.
	MinimumRole string

	// ContextEnricher is an optional function to propagate claims to the standard
	// Go context. If provided, it will be called after successful admission.
	ContextEnricher func(c context.Context, claims AuthClaims) context.Context

	// Debug logs rejected requests with their decoded detail.
	Debug bool
}

// ErrorResponse is the JSON body sent on rejection.
type ErrorResponse struct {
	Error string `json:"error"`
}

// New builds the admission middleware. Each gate check short-circuits into
// the configured ErrorHandler; the default handler converts every failure
// into one of the four JSON responses and never lets an error escape.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, err := ExtractRawTokenFromContext(ctx, cfg.getExtractors())
			if err != nil {
				return cfg.fail(ctx, err)
			}

			claims, err := cfg.TokenValidator.Validate(raw)
			if err != nil {
				return cfg.fail(ctx, err)
			}

			if err := performAdmissionChecks(claims, cfg); err != nil {
				return cfg.fail(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, claims)

			// propagate claims to the standard context for downstream handlers
			if cfg.ContextEnricher != nil {
				stdCtx := cfg.ContextEnricher(ctx.Context(), claims)
				ctx.SetContext(stdCtx)
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// ResponseFor maps a gate failure to its externally observable outcome.
func ResponseFor(err error) (int, ErrorResponse) {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return router.StatusInternalServerError, ErrorResponse{Error: "Internal server error"}
	}

	switch {
	case richErr.TextCode == textCodeMissingToken:
		return router.StatusUnauthorized, ErrorResponse{Error: "Missing Token"}
	case richErr.Category == goerrors.CategoryAuthz:
		return router.StatusForbidden, ErrorResponse{Error: "User does not have access permission"}
	case richErr.Category == goerrors.CategoryAuth:
		return router.StatusUnauthorized, ErrorResponse{Error: "Invalid token"}
	default:
		return router.StatusInternalServerError, ErrorResponse{Error: "Internal server error"}
	}
}

func (cfg Config) fail(ctx router.Context, err error) error {
	if cfg.Debug {
		log.Printf("gateware rejected request: %s", print.MaybePrettyJSON(map[string]any{
			"path":  ctx.Path(),
			"error": err.Error(),
		}))
	}
	return cfg.ErrorHandler(ctx, err)
}

// performAdmissionChecks validates the decoded role against the configured policy
func performAdmissionChecks(claims AuthClaims, cfg Config) error {
	if len(cfg.AllowedRoles) > 0 {
		allowed := false
		for _, role := range cfg.AllowedRoles {
			if claims.HasRole(role) {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrRoleNotAllowed
		}
	}

	if cfg.MinimumRole != "" && !claims.IsAtLeast(cfg.MinimumRole) {
		return ErrRoleNotAllowed
	}

	return nil
}

func ExtractRawTokenFromContext(ctx router.Context, extractors []TokenExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(ctx)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			status, body := ResponseFor(err)
			return c.JSON(status, body)
		}
	}

	if cfg.TokenValidator == nil {
		panic("GATE: admission middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	return cfg
}

func (cfg *Config) getExtractors() []TokenExtractor {
	return GetExtractors(cfg.TokenLookup, cfg.AuthScheme)
}

// GetExtractors parses a lookup string of the form
// "header:Authorization,cookie:jwt,query:auth_token,param:token" into
// extractor functions tried in order.
func GetExtractors(tokenLookup string, authSchemes ...string) []TokenExtractor {
	extractors := make([]TokenExtractor, 0)

	authScheme := ""
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, tokenFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, tokenFromQuery(parts[1]))
		case "param":
			extractors = append(extractors, tokenFromParam(parts[1]))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(parts[1]))
		}
	}

	return extractors
}

type TokenExtractor func(c router.Context) (string, error)

// tokenFromHeader returns a function that extracts the token from the request
// header. With an empty scheme the whole header value is the token.
func tokenFromHeader(header string, authScheme string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		a := c.GetString(header, "")
		if authScheme == "" {
			token := strings.TrimSpace(a)
			if token == "" {
				return "", ErrMissingToken
			}
			return token, nil
		}

		l := len(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrMissingToken
	}
}

// tokenFromQuery returns a function that extracts the token from the query string.
func tokenFromQuery(param string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Query(param, "")
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// tokenFromParam returns a function that extracts the token from the url param string.
func tokenFromParam(param string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Param(param)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// tokenFromCookie returns a function that extracts the token from the named cookie.
func tokenFromCookie(name string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}
