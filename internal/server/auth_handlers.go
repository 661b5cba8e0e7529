package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionLifetime = 7 * 24 * time.Hour

// SignupPage renders the registration form.
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return c.Render("auth/signup", s.viewData(c, fiber.Map{
		"Title": "Sign up",
	}))
}

// Signup handles the registration form submission. A new account is logged
// in right away and lands on the front page.
func (s *Server) Signup(c *fiber.Ctx) error {
	input := service.SignupInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, err := s.userService.Signup(c.UserContext(), input)
	if err != nil {
		if appErr, ok := models.AsValidation(err); ok {
			return c.Render("auth/signup", s.viewData(c, fiber.Map{
				"Title":    "Sign up",
				"Errors":   appErr.Fields,
				"Username": input.Username,
				"Email":    input.Email,
			}))
		}
		return err
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// LoginPage renders the login form, preserving the `next` redirect target.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.Render("auth/login", s.viewData(c, fiber.Map{
		"Title": "Log in",
		"Next":  c.Query("next"),
	}))
}

// Login handles the login form submission. Bad credentials re-render the
// form; success sets the session cookie and honors the `next` parameter.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	next := c.FormValue("next")

	user, err := s.userService.Authenticate(c.UserContext(), username, password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.ErrCodeUnauthorized {
			return c.Render("auth/login", s.viewData(c, fiber.Map{
				"Title":    "Log in",
				"Error":    "Invalid username or password",
				"Username": username,
				"Next":     next,
			}))
		}
		return err
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(safeNextPath(next), fiber.StatusFound)
}

// Logout clears the session cookie and returns to the front page.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/", fiber.StatusFound)
}

// setSessionCookie issues a session token for the user and stores it in the
// HTTP-only session cookie.
func (s *Server) setSessionCookie(c *fiber.Ctx, userID uint) error {
	token, err := s.generateSessionToken(userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
	})
	return nil
}

// generateSessionToken creates the signed session JWT for the given user.
func (s *Server) generateSessionToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": middleware.TokenIssuer,
		"aud": middleware.TokenAudience,
		"exp": now.Add(sessionLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
