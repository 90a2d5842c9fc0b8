package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servibook/reserva/controllers"
	"github.com/servibook/reserva/middleware"
)

// SetupUserRoutes configures account management routes.
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/users", middleware.Protected())

	users.Get("/", controllers.ListUsers)
	users.Get("/:id", controllers.GetUserByID)
	users.Patch("/:id", controllers.UpdateUser)
	users.Delete("/:id", controllers.DisableUser)
}
