package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gdm_backend/internals/constants"
	restauracaoController "gdm_backend/internals/features/igreja/restauracoes/controller"
	authMw "gdm_backend/internals/middlewares/auth"
)

func RestauracaoRoutes(api fiber.Router, db *gorm.DB) {
	ctl := restauracaoController.NewRestauracaoController(db)

	grupo := api.Group("/restauracoes",
		authMw.AuthMiddleware(),
		authMw.RequireRole(constants.AdminEPastor...))

	grupo.Get("/", ctl.GetAll)
	grupo.Post("/", ctl.Create)
	grupo.Put("/:id", ctl.Update)
}
