package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gdm_backend/internals/constants"
	authController "gdm_backend/internals/features/users/auth/controller"
	"gdm_backend/internals/middlewares"
	authMw "gdm_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	grupo := api.Group("/auth")
	grupo.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	grupo.Post("/login-membro", middlewares.LoginRateLimiter(), ctl.LoginMembro)
	grupo.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)

	grupo.Get("/me", authMw.AuthMiddleware(), ctl.Me)
	grupo.Put("/change-password", authMw.AuthMiddleware(), ctl.ChangePassword)

	admin := grupo.Group("/users", authMw.AuthMiddleware(), authMw.RequireRole(constants.AdminOnly...))
	admin.Get("/", ctl.GetAllUsers)
	admin.Put("/:id", ctl.UpdateUser)
	admin.Delete("/:id", ctl.DeleteUser)
	admin.Put("/:id/reactivar", ctl.ReactivateUser)
}
