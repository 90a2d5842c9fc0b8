package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servibook/reserva/db"
	"github.com/servibook/reserva/middleware"
	"github.com/servibook/reserva/models"
	"github.com/servibook/reserva/notifications"
	"github.com/servibook/reserva/payments"
	"github.com/servibook/reserva/policy"
	"github.com/servibook/reserva/utils"
)

// ListReservations returns the reservations visible to the caller:
// everything for admins, own bookings for clients and providers.
func ListReservations(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	query := db.DB.Preload("Service").Preload("Provider").Preload("Client").Preload("Payment")
	switch principal.Role {
	case models.RoleAdmin:
		// no filter
	case models.RoleProvider:
		query = query.Where("provider_id = ?", principal.UserID)
	default:
		query = query.Where("client_id = ?", principal.UserID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", models.ReservationStatus(status))
	}

	var reservations []models.Reservation
	if err := query.Order("reservation_date desc").Find(&reservations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reservations",
			Error:   err.Error(),
		})
	}
	return c.JSON(reservations)
}

// GetReservation returns one reservation if the caller may see it.
func GetReservation(c *fiber.Ctx) error {
	reservation, status, err := loadAuthorizedReservation(c, policy.ViewReservation)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reservation)
}

// CreateReservation books a provider service for the calling client.
func CreateReservation(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if err := policy.AuthorizeReservation(principal, policy.CreateReservation, policy.ReservationOwnership{}); err != nil {
		return policyErrorResponse(c, err)
	}

	type CreateInput struct {
		ServiceID       uint      `json:"service_id"`
		ReservationDate time.Time `json:"reservation_date"`
		StartTime       time.Time `json:"start_time"`
		EndTime         time.Time `json:"end_time"`
		PropertyName    string    `json:"property_name"`
		Comments        string    `json:"comments"`
		ServiceList     string    `json:"service_list"`
	}

	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	reservation := models.Reservation{
		ReservationDate: input.ReservationDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		TotalPriceCents: service.PriceCents,
		Status:          models.StatusPending,
		PropertyName:    input.PropertyName,
		Comments:        input.Comments,
		ServiceList:     input.ServiceList,
		ClientID:        principal.UserID,
		ProviderID:      service.ProviderID,
		ServiceID:       service.ID,
	}
	if err := reservation.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		payment, err := payments.NewPayment(tx, reservation.TotalPriceCents)
		if err != nil {
			return err
		}
		reservation.PaymentID = payment.ID
		return tx.Create(&reservation).Error
	})
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create reservation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(reservation)
}

// ConfirmReservation lets the assigned provider accept a pending
// reservation and captures its payment.
func ConfirmReservation(c *fiber.Ctx) error {
	return transitionHandler(c, policy.ConfirmReservation, models.StatusConfirmed)
}

// RejectReservation lets the assigned provider decline a pending
// reservation.
func RejectReservation(c *fiber.Ctx) error {
	return transitionHandler(c, policy.RejectReservation, models.StatusRejected)
}

// CancelReservation cancels a confirmed reservation before its start
// and refunds the captured payment. Cancellation is a status, never a
// row deletion.
func CancelReservation(c *fiber.Ctx) error {
	return transitionHandler(c, policy.CancelReservation, models.StatusCancelled)
}

// transitionHandler is the shared path for user-invoked status changes:
// load, authorize, compare-and-set, then side effects. Side-effect
// failures after the committed transition are logged by the
// collaborators, never surfaced as a transition failure.
func transitionHandler(c *fiber.Ctx, op policy.Operation, target models.ReservationStatus) error {
	reservation, status, err := loadAuthorizedReservation(c, op)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	// The before-start window only applies to reservations that can still
	// be cancelled; anything else falls through to the transition check.
	if target == models.StatusCancelled && reservation.Status == models.StatusConfirmed &&
		!time.Now().Before(reservation.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Reservation can no longer be cancelled",
		})
	}

	wasConfirmed := reservation.Status == models.StatusConfirmed

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := reservation.Transition(tx, target); err != nil {
			return err
		}
		switch {
		case target == models.StatusConfirmed:
			return payments.Capture(tx, reservation.PaymentID)
		case target == models.StatusCancelled && wasConfirmed:
			return payments.Refund(tx, reservation.PaymentID)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidStatusTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, models.ErrStaleStatus):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Reservation was updated concurrently, please retry",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update reservation",
		})
	}

	notifications.NotifyStatusChange(reservation)

	return c.JSON(reservation)
}

// loadAuthorizedReservation fetches the reservation from the route id
// and runs the policy check for op against its ownership. The read is
// retried once on transient persistence failures.
func loadAuthorizedReservation(c *fiber.Ctx, op policy.Operation) (*models.Reservation, int, error) {
	id := c.Params("id")
	var reservation models.Reservation
	err := db.DB.Preload("Service").Preload("Provider").Preload("Client").Preload("Payment").
		First(&reservation, id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.DB.Preload("Service").Preload("Provider").Preload("Client").Preload("Payment").
			First(&reservation, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.StatusNotFound, errors.New("reservation not found")
		}
		return nil, fiber.StatusInternalServerError, errors.New("failed to load reservation")
	}

	principal := middleware.CurrentPrincipal(c)
	own := policy.ReservationOwnership{
		ClientID:   reservation.ClientID,
		ProviderID: reservation.ProviderID,
	}
	if err := policy.AuthorizeReservation(principal, op, own); err != nil {
		if errors.Is(err, policy.ErrUnauthenticated) {
			return nil, fiber.StatusUnauthorized, err
		}
		return nil, fiber.StatusForbidden, err
	}
	return &reservation, fiber.StatusOK, nil
}

// policyErrorResponse maps policy failures onto 401/403.
func policyErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, policy.ErrUnauthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
}
