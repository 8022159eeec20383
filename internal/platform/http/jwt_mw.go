package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error_code": "UNAUTHORIZED",
		"message":    "Authorization required",
	})
}

// JWTAuth validates a Bearer token and stores account_id and role in locals.
func JWTAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			return unauthorized(c)
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")
		tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !tok.Valid {
			return unauthorized(c)
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}
		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals("account_id", sub)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Locals("role", role)
		}
		return c.Next()
	}
}
