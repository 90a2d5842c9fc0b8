package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servibook/reserva/controllers"
	"github.com/servibook/reserva/middleware"
)

// SetupProviderRoutes configures provider business-identity routes.
func SetupProviderRoutes(app *fiber.App) {
	providers := app.Group("/providers", middleware.Protected())

	providers.Get("/:id/details", controllers.GetProviderDetails)
	providers.Put("/:id/details", controllers.UpsertProviderDetails)
	providers.Post("/:id/documents/:kind", controllers.UploadProviderDocument)
}
