package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
)

func MeHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals("account_id").(string)
		if id == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Authorization required",
			})
		}

		acc, err := accounts.GetByID(c.Context(), id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "User not found",
			})
		}

		return c.JSON(fiber.Map{
			"id":         acc.ID,
			"name":       acc.Name,
			"email":      acc.Email,
			"phone":      acc.Phone,
			"role":       acc.Role,
			"district":   acc.District,
			"verified":   acc.Verified,
			"created_at": acc.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}
