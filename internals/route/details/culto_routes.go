package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gdm_backend/internals/constants"
	cultoController "gdm_backend/internals/features/igreja/cultos/controller"
	frequenciaController "gdm_backend/internals/features/igreja/frequencias/controller"
	authMw "gdm_backend/internals/middlewares/auth"
)

func CultoRoutes(api fiber.Router, db *gorm.DB) {
	cultos := cultoController.NewCultoController(db)
	frequencias := frequenciaController.NewFrequenciaController(db)

	grupo := api.Group("/cultos", authMw.AuthMiddleware())

	// Estatísticas antes de "/:id" para o router não engolir "stats".
	stats := grupo.Group("/stats")
	stats.Get("/gerais", cultos.EstatisticasGerais)
	stats.Get("/por-mes", cultos.PresencasPorMes)
	stats.Get("/por-culto", cultos.PresencasPorCulto)
	stats.Get("/mais-assiduos", cultos.MaisAssiduos)
	stats.Get("/mais-faltas", cultos.MaisFaltas)
	stats.Get("/melhor-culto", cultos.MelhorCulto)

	grupo.Get("/", cultos.GetAll)
	grupo.Get("/:id", cultos.GetByID)
	grupo.Post("/", authMw.RequireRole(constants.RoleAdmin, constants.RolePastor, constants.RoleSecretario), cultos.Create)
	grupo.Delete("/:id", authMw.RequireRole(constants.AdminOnly...), cultos.Delete)

	// Presenças do culto: o secretário lança, todos consultam.
	grupo.Get("/:id/presencas", frequencias.ObterPresencas)
	grupo.Post("/:id/presencas",
		authMw.RequireRole(constants.RoleAdmin, constants.RolePastor, constants.RoleSecretario),
		frequencias.SalvarPresencas)
	grupo.Post("/:id/importar",
		authMw.RequireRole(constants.RoleAdmin, constants.RolePastor, constants.RoleSecretario),
		frequencias.ImportarCSV)
}
