package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/servibook/reserva/cron"
	"github.com/servibook/reserva/db"
	"github.com/servibook/reserva/redis"
	"github.com/servibook/reserva/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Reserva API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupReservationRoutes(app)

	app.Listen(":8000")
}
