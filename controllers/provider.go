package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/servibook/reserva/db"
	"github.com/servibook/reserva/middleware"
	"github.com/servibook/reserva/models"
	"github.com/servibook/reserva/policy"
	"github.com/servibook/reserva/utils"
)

// document form-field names mapped to their ProviderDetails column.
var documentFields = map[string]string{
	"kbis":        "kbis_url",
	"attestation": "attestation_url",
	"insurance":   "insurance_url",
}

// GetProviderDetails returns the business details of a provider.
func GetProviderDetails(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}

	principal := middleware.CurrentPrincipal(c)
	if err := policy.AuthorizeProviderDetails(principal, uint(userID)); err != nil {
		return policyErrorResponse(c, err)
	}

	var details models.ProviderDetails
	if err := db.DB.Where("user_id = ?", userID).First(&details).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider details not found",
		})
	}
	return c.JSON(details)
}

// UpsertProviderDetails creates or updates the caller's business
// identity record (SIRET, company name, RC number).
func UpsertProviderDetails(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}

	principal := middleware.CurrentPrincipal(c)
	if err := policy.AuthorizeProviderDetails(principal, uint(userID)); err != nil {
		return policyErrorResponse(c, err)
	}

	var owner models.User
	if err := db.DB.Preload("Role").First(&owner, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	// Business details only exist on provider accounts.
	if owner.Role.Name != models.RoleProvider {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User is not a provider",
		})
	}

	type DetailsInput struct {
		CompanyName string `json:"company_name"`
		Siret       string `json:"siret"`
		RCNumber    string `json:"rc_number"`
	}
	input := new(DetailsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var details models.ProviderDetails
	result := db.DB.Where("user_id = ?", userID).First(&details)
	details.UserID = uint(userID)
	details.CompanyName = input.CompanyName
	details.Siret = input.Siret
	details.RCNumber = input.RCNumber

	if result.RowsAffected == 0 {
		err = db.DB.Create(&details).Error
	} else {
		err = db.DB.Save(&details).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save provider details",
		})
	}
	return c.JSON(details)
}

// UploadProviderDocument receives one of the three verification
// documents as multipart form data, stores it on Cloudinary and records
// the secure URL.
func UploadProviderDocument(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider id",
		})
	}

	principal := middleware.CurrentPrincipal(c)
	if err := policy.AuthorizeProviderDetails(principal, uint(userID)); err != nil {
		return policyErrorResponse(c, err)
	}

	kind := c.Params("kind")
	column, ok := documentFields[kind]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown document kind",
		})
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing document file",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read document",
		})
	}
	defer file.Close()

	var details models.ProviderDetails
	if err := db.DB.Where("user_id = ?", userID).First(&details).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider details not found",
		})
	}

	publicID := fmt.Sprintf("provider_%d_%s", userID, kind)
	url, err := utils.UploadToCloudinary(file, publicID, "provider-documents")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload document",
		})
	}

	if err := db.DB.Model(&details).Update(column, url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save document URL",
		})
	}

	return c.JSON(fiber.Map{
		"kind": kind,
		"url":  url,
	})
}
