package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/servibook/reserva/policy"
	"github.com/servibook/reserva/redis"
	"github.com/servibook/reserva/utils"
)

// Protected rejects requests without a valid bearer token and attaches
// the caller's principal to the request locals.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   utils.JWTSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			raw := bearerToken(c)
			if redis.IsTokenRevoked(raw) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has been revoked",
				})
			}

			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			id, ok := claims["id"].(float64)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}
			role, ok := claims["role"].(string)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid role in token",
				})
			}

			c.Locals("principal", &policy.Principal{UserID: uint(id), Role: role})
			return c.Next()
		},
	})
}

// OptionalAuth attaches a principal when a valid token is present but
// lets the request through either way, so public endpoints still
// resolve for anonymous callers.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" || redis.IsTokenRevoked(raw) {
			return c.Next()
		}
		claims, err := utils.ParseToken(raw)
		if err != nil {
			return c.Next()
		}
		c.Locals("principal", &policy.Principal{UserID: claims.UserID, Role: claims.Role})
		return c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal, or nil for an
// anonymous request.
func CurrentPrincipal(c *fiber.Ctx) *policy.Principal {
	p, _ := c.Locals("principal").(*policy.Principal)
	return p
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// jwtError maps token failures to 401 without leaking internals.
func jwtError(c *fiber.Ctx, err error) error {
	msg := "Invalid or malformed token"
	if errors.Is(err, jwt.ErrTokenExpired) {
		msg = "Token has expired"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": msg,
	})
}
