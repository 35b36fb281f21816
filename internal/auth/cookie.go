package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// TokenCookieName is the cookie key carrying the auth token.
const TokenCookieName = "token"

// TokenFromCookie pulls the raw token out of the request's cookie store.
// It does not validate the token; that is the TokenManager's job.
func TokenFromCookie(c *fiber.Ctx) (string, bool) {
	token := c.Cookies(TokenCookieName)
	if token == "" {
		return "", false
	}
	return token, true
}

// SetTokenCookie attaches the issued token with expiry matching the token's.
func SetTokenCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearTokenCookie expires the cookie client-side. Tokens are not revocable
// server-side; an issued token stays valid until natural expiry.
func ClearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
