package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole só deixa passar utilizadores com um dos role_id permitidos.
func RequireRole(allowedRoles ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID, ok := c.Locals("role_id").(int)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Não autenticado",
			})
		}

		for _, allowed := range allowedRoles {
			if roleID == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message":          "Sem permissão para aceder a este recurso",
			"role_id":          roleID,
			"roles_permitidos": allowedRoles,
		})
	}
}
