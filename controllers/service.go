package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servibook/reserva/db"
	"github.com/servibook/reserva/middleware"
	"github.com/servibook/reserva/models"
)

// ListServices returns the public service catalog, optionally filtered
// by provider.
func ListServices(c *fiber.Ctx) error {
	query := db.DB.Preload("Provider")
	if providerID := c.Query("provider_id"); providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}
	return c.JSON(services)
}

// CreateService adds a catalog entry owned by the calling provider.
func CreateService(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	if principal.Role != models.RoleProvider {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only providers can create services",
		})
	}

	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if service.PriceCents < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price must not be negative",
		})
	}
	service.ProviderID = principal.UserID

	if err := db.DB.Create(service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService edits a catalog entry owned by the calling provider.
func UpdateService(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	id := c.Params("id")
	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if principal.Role != models.RoleAdmin && service.ProviderID != principal.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not own this service",
		})
	}

	input := new(models.Service)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.PriceCents < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price must not be negative",
		})
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"duration":    input.Duration,
		"price_cents": input.PriceCents,
	}
	if err := db.DB.Model(&service).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}
	return c.JSON(service)
}
