package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gdm_backend/internals/databases"
)

// BaseRoutes: raiz, health check e endpoints de diagnóstico.
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "API Gestão de Membros - Casa da Glória",
			"version": "1.0",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	test := app.Group("/test")

	test.Get("/connection", func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "Sem ligação à base de dados",
			})
		}
		return c.JSON(fiber.Map{"success": true, "message": "Ligação à base de dados OK"})
	})

	test.Get("/roles", func(c *fiber.Ctx) error {
		var roles []struct {
			ID   int    `json:"id"`
			Nome string `json:"nome"`
		}
		if err := db.WithContext(c.Context()).
			Raw("SELECT id, nome FROM roles ORDER BY id").
			Scan(&roles).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
		}
		return c.JSON(fiber.Map{"success": true, "roles": roles})
	})

	test.Get("/users", func(c *fiber.Ctx) error {
		var total int64
		if err := db.WithContext(c.Context()).
			Table("users").Count(&total).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
		}
		return c.JSON(fiber.Map{"success": true, "total_users": total})
	})
}
