package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gdm_backend/internals/constants"
	visitanteController "gdm_backend/internals/features/igreja/visitantes/controller"
	authMw "gdm_backend/internals/middlewares/auth"
)

func VisitanteRoutes(api fiber.Router, db *gorm.DB) {
	ctl := visitanteController.NewVisitanteController(db)

	grupo := api.Group("/visitantes", authMw.AuthMiddleware())

	grupo.Get("/", ctl.GetAll)
	grupo.Get("/relatorio", ctl.Relatorio)
	grupo.Get("/culto/:culto_id", ctl.GetByCulto)
	grupo.Post("/", ctl.Create)

	grupo.Delete("/:id", authMw.RequireRole(constants.AdminOnly...), ctl.Delete)
	grupo.Post("/:id/converter", authMw.RequireRole(constants.AdminEPastor...), ctl.Converter)
}
