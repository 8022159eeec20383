package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/otp"
)

type resendOTPReq struct {
	Phone string `json:"phone"`
}

func ResendOTPHandler(gate *otp.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resendOTPReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Invalid request body",
			})
		}
		req.Phone = strings.TrimSpace(req.Phone)
		if req.Phone == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Phone is required",
			})
		}

		if err := gate.Resend(c.Context(), req.Phone); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND",
					"message":    "User not found",
				})
			case errors.Is(err, domain.ErrResendThrottled):
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error_code": "RATE_LIMIT_EXCEEDED",
					"message":    "Too many requests. Try again later",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error_code": "SERVER_ERROR",
					"message":    "Could not resend OTP",
				})
			}
		}

		return c.JSON(fiber.Map{
			"message": "OTP resent successfully",
		})
	}
}
