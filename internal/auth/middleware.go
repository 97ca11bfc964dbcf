package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

const principalKey = "auth_principal"

// TokenValidator resolves a plaintext bearer token to its owning principal.
type TokenValidator interface {
	ValidateToken(ctx context.Context, plaintext string) (*domain.Principal, error)
}

// Middleware validates bearer tokens and loads principals for protected routes.
type Middleware struct {
	tokens TokenValidator
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens TokenValidator) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication: the request either proceeds with a resolved
// principal in locals or fails closed with 401.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	principal, err := m.tokens.ValidateToken(c.UserContext(), parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
