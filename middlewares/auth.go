package middlewares

import (
	"colorbet/config"
	"colorbet/database"
	"colorbet/helpers"
	"colorbet/models"

	"github.com/gofiber/fiber/v2"
)

// UserAuthMiddleware resolves the authenticated principal. Identity is
// validated upstream (session gateway); the core trusts the identifier it is
// handed and only checks the account exists and is active.
func UserAuthMiddleware(c *fiber.Ctx) error {
	userCode := c.Get("X-User-Code")
	if userCode == "" {
		return helpers.JSONError(c, "USER_CODE_REQUIRED")
	}

	var user models.User
	if err := database.DB.Where("user_code = ? AND is_active = true", userCode).First(&user).Error; err != nil {
		return helpers.JSONError(c, "USER_NOT_FOUND_OR_INACTIVE")
	}

	c.Locals("user", user)
	return c.Next()
}

func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Admin-Token")
		if token == "" || token != config.AdminToken() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_ADMIN_TOKEN",
				"data":    nil,
			})
		}
		return c.Next()
	}
}
