package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/otp"
)

type verifyOTPReq struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func VerifyOTPHandler(gate *otp.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyOTPReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Invalid request body",
			})
		}
		req.Phone = strings.TrimSpace(req.Phone)
		req.OTP = strings.TrimSpace(req.OTP)
		if req.Phone == "" || len(req.OTP) != 6 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CODE",
				"message":    "Invalid or expired OTP",
			})
		}

		if _, err := gate.Verify(c.Context(), req.Phone, req.OTP); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND",
					"message":    "User not found",
				})
			case errors.Is(err, domain.ErrInvalidOrExpiredCode):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error_code": "INVALID_CODE",
					"message":    "Invalid or expired OTP",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error_code": "SERVER_ERROR",
					"message":    "OTP verification failed",
				})
			}
		}

		return c.JSON(fiber.Map{
			"message": "Phone verified successfully",
		})
	}
}
