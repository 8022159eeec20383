package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/otp"
	"github.com/PathForge-Automations/PrajaConnect/internal/platform/security"
)

type signUpReq struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required,len=10,numeric"`
	Password string  `json:"password" validate:"required,min=8,max=50"`
	Role     string  `json:"role" validate:"required,oneof=CITIZEN COLLECTOR LEADERSHIP"`
	District *string `json:"district" validate:"omitempty,max=100"`
}

var validate = validator.New()

func SignUpHandler(accounts domain.AccountRepo, gate *otp.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signUpReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Invalid request body",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR",
				"message":    err.Error(),
			})
		}

		pwHash, err := security.HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Registration failed",
			})
		}

		code, exp, err := gate.NewCode()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Registration failed",
			})
		}

		acc, err := accounts.Create(c.Context(), domain.CreateAccountParams{
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:        req.Phone,
			PasswordHash: pwHash,
			Role:         domain.Role(req.Role),
			District:     req.District,
			OTP:          code,
			OTPExpiresAt: exp,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateContact) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error_code": "DUPLICATE_CONTACT",
					"message":    "User already exists",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Registration failed",
			})
		}

		gate.IssueOnSignup(acc, code)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Signup successful. OTP sent!",
		})
	}
}
