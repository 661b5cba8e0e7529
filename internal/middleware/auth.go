package middleware

import (
	"fmt"
	"net/url"
	"strconv"

	"yatube/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// TokenIssuer and TokenAudience are validated on every session token.
const (
	TokenIssuer   = "yatube-web"
	TokenAudience = "yatube-browser"
)

// InitMiddleware initializes session middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// LoginURL builds the login redirect target carrying the original URL in `next`.
func LoginURL(next string) string {
	return "/auth/login/?next=" + url.QueryEscape(next)
}

// ParseSessionToken validates a session JWT and returns the user ID it carries.
func ParseSessionToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return 0, fmt.Errorf("invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != TokenAudience {
		return 0, fmt.Errorf("invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}
	return uint(userID), nil
}

// SessionUser resolves the session cookie into c.Locals("userID") when a valid
// session exists. It never blocks the request; anonymous visitors pass through.
func SessionUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(cfg.SessionCookie)
		if tokenString == "" {
			return c.Next()
		}
		userID, err := ParseSessionToken(tokenString)
		if err != nil {
			// Stale or tampered cookie; treat the visitor as anonymous.
			return c.Next()
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// LoginRequired redirects anonymous visitors to the login page, carrying the
// original URL in the `next` query parameter so login can return them here.
func LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid := c.Locals("userID"); uid != nil {
			if _, ok := uid.(uint); ok {
				return c.Next()
			}
		}
		return c.Redirect(LoginURL(c.OriginalURL()), fiber.StatusFound)
	}
}
