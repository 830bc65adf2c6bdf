package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gdm_backend/internals/route/details"
)

// SetupRoutes liga todos os grupos de rotas da API.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	api := app.Group("/api")
	details.AuthRoutes(api, db)
	details.MembroRoutes(api, db)
	details.CultoRoutes(api, db)
	details.VisitanteRoutes(api, db)
	details.RestauracaoRoutes(api, db)
}
