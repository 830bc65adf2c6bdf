package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gdm_backend/internals/constants"
	membroController "gdm_backend/internals/features/igreja/membros/controller"
	authMw "gdm_backend/internals/middlewares/auth"
)

func MembroRoutes(api fiber.Router, db *gorm.DB) {
	ctl := membroController.NewMembroController(db)

	grupo := api.Group("/membros", authMw.AuthMiddleware())

	grupo.Get("/", ctl.GetAll)
	grupo.Get("/:id", ctl.GetByID)

	grupo.Post("/", authMw.RequireRole(constants.AdminEPastor...), ctl.Create)
	grupo.Put("/:id", authMw.RequireRole(constants.AdminEPastor...), ctl.Update)

	grupo.Delete("/:id", authMw.RequireRole(constants.AdminOnly...), ctl.Deactivate)
	grupo.Put("/:id/reactivar", authMw.RequireRole(constants.AdminOnly...), ctl.Reactivate)
	grupo.Delete("/:id/definitivo", authMw.RequireRole(constants.AdminOnly...), ctl.HardDelete)
}
