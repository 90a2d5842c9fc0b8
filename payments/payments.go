// Package payments owns the money side of the reservation lifecycle:
// a capture when the provider confirms, a refund when a confirmed
// reservation is cancelled.
package payments

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servibook/reserva/models"
)

// NewPayment creates the pending payment row for a reservation being
// booked and returns it with its provider reference set.
func NewPayment(tx *gorm.DB, amountCents int64) (*models.Payment, error) {
	payment := &models.Payment{
		Reference:   uuid.NewString(),
		AmountCents: amountCents,
		Status:      models.PaymentPending,
	}
	if err := tx.Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

// Capture marks the payment captured. Capturing an already captured
// payment is a no-op so a retried confirmation stays idempotent.
func Capture(tx *gorm.DB, paymentID uint) error {
	var payment models.Payment
	if err := tx.First(&payment, paymentID).Error; err != nil {
		return fmt.Errorf("payment %d not found: %w", paymentID, err)
	}
	if payment.Status == models.PaymentCaptured {
		return nil
	}
	if payment.Status != models.PaymentPending {
		return fmt.Errorf("cannot capture payment %d in status %s", paymentID, payment.Status)
	}
	return tx.Model(&payment).Update("status", models.PaymentCaptured).Error
}

// Refund reverses a captured payment after a post-confirmation
// cancellation. Refunding twice is a no-op.
func Refund(tx *gorm.DB, paymentID uint) error {
	var payment models.Payment
	if err := tx.First(&payment, paymentID).Error; err != nil {
		return fmt.Errorf("payment %d not found: %w", paymentID, err)
	}
	switch payment.Status {
	case models.PaymentRefunded:
		return nil
	case models.PaymentPending:
		// Nothing was captured; log and leave the row pending.
		log.Printf("refund requested for uncaptured payment %d", paymentID)
		return nil
	}
	return tx.Model(&payment).Update("status", models.PaymentRefunded).Error
}
