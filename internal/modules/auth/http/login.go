package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
	"github.com/PathForge-Automations/PrajaConnect/internal/platform/security"
)

type loginReq struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginResp struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

// LoginHandler is a pure function over the credential store: lookup,
// require verified, compare password, issue the signed token.
func LoginHandler(accounts domain.AccountRepo, jwtMgr *security.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Invalid request body",
			})
		}
		req.Phone = strings.TrimSpace(req.Phone)

		acc, err := accounts.GetByPhone(c.Context(), req.Phone)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND",
					"message":    "User not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Login failed",
			})
		}

		if !acc.Verified {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNVERIFIED",
				"message":    "Please verify your phone first",
			})
		}

		ok, err := security.CheckPassword(acc.PasswordHash, req.Password)
		if err != nil || !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "INVALID_PASSWORD",
				"message":    "Invalid password",
			})
		}

		token, _, err := jwtMgr.IssueAccess(acc.ID, string(acc.Role))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Login failed",
			})
		}

		return c.JSON(loginResp{
			Message: "Login successful",
			Token:   token,
			Role:    string(acc.Role),
		})
	}
}
