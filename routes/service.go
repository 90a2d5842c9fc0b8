package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servibook/reserva/controllers"
	"github.com/servibook/reserva/middleware"
)

// SetupServiceRoutes configures the service catalog routes. Listing is
// public; OptionalAuth still resolves a principal when one is present.
func SetupServiceRoutes(app *fiber.App) {
	services := app.Group("/services")

	services.Get("/", middleware.OptionalAuth(), controllers.ListServices)
	services.Post("/", middleware.Protected(), controllers.CreateService)
	services.Patch("/:id", middleware.Protected(), controllers.UpdateService)
}
