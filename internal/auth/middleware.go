package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/domain"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the verified identity produced once per request by the auth
// gate. Handlers read it from locals instead of re-parsing the token.
type Principal struct {
	UserID   string
	Access   domain.AccessLevel
	IssuedAt time.Time
}

// AuthMiddleware gates ownership-sensitive routes behind cookie token
// verification. It never touches storage; a missing or invalid token fails
// the request before any handler runs.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := TokenFromCookie(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{
		UserID: claims.Subject,
		Access: claims.Access,
	}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireSelf rejects operations on a user record whose id differs from the
// authenticated subject, regardless of whether that id exists.
func RequireSelf(principal *Principal, pathID string) error {
	if principal == nil || principal.UserID != pathID {
		return apperrors.NewUnauthorized("subject mismatch")
	}
	return nil
}
