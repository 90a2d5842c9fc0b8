package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servibook/reserva/db"
	"github.com/servibook/reserva/middleware"
	"github.com/servibook/reserva/models"
	"github.com/servibook/reserva/policy"
)

// ListUsers returns all accounts. Admin only (enforced by routing).
func ListUsers(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil || principal.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	var users []models.User
	if err := db.DB.Preload("Role").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// GetUserByID returns one account: self or admin.
func GetUserByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	principal := middleware.CurrentPrincipal(c)
	if err := policy.AuthorizeUser(principal, policy.ViewUser, uint(id)); err != nil {
		return policyErrorResponse(c, err)
	}

	var user models.User
	if err := db.DB.Preload("Role").Preload("ProviderDetails").First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	user.Password = ""
	return c.JSON(user)
}

// UpdateUser edits profile fields: self or admin. Email and role are
// not editable here.
func UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	principal := middleware.CurrentPrincipal(c)
	if err := policy.AuthorizeUser(principal, policy.EditUser, uint(id)); err != nil {
		return policyErrorResponse(c, err)
	}

	type UpdateInput struct {
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ProfilePicture string `json:"profile_picture"`
		Phone          string `json:"phone"`
		Address        string `json:"address"`
		City           string `json:"city"`
		ZipCode        string `json:"zip_code"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{
		"first_name":      input.FirstName,
		"last_name":       input.LastName,
		"profile_picture": input.ProfilePicture,
		"phone":           input.Phone,
		"address":         input.Address,
		"city":            input.City,
		"zip_code":        input.ZipCode,
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// DisableUser soft-disables an account. Admin only. Provider details
// are removed in the same transaction; reservations stay for history.
func DisableUser(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil || principal.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("disabled_at", now).Error; err != nil {
			return err
		}
		// Explicit two-step cascade: the business identity dies with the
		// account.
		return tx.Where("user_id = ?", user.ID).Delete(&models.ProviderDetails{}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to disable user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User disabled",
	})
}
