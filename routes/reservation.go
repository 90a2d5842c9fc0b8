package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servibook/reserva/controllers"
	"github.com/servibook/reserva/middleware"
)

// SetupReservationRoutes configures all reservation related routes.
// Every route passes through Protected first; ownership rules are
// enforced in the handlers via the policy package.
func SetupReservationRoutes(app *fiber.App) {
	reservations := app.Group("/reservations", middleware.Protected())

	reservations.Get("/", controllers.ListReservations)
	reservations.Get("/:id", controllers.GetReservation)
	reservations.Post("/", controllers.CreateReservation)
	reservations.Patch("/:id/confirm", controllers.ConfirmReservation)
	reservations.Patch("/:id/reject", controllers.RejectReservation)
	reservations.Patch("/:id/cancel", controllers.CancelReservation)
}
