package models

import (
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentCaptured PaymentStatus = "captured"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment tracks the money side of a reservation. Reference is the id
// handed to the payment provider, generated once at creation.
type Payment struct {
	gorm.Model
	Reference   string        `json:"reference" gorm:"uniqueIndex"`
	AmountCents int64         `json:"amount_cents"`
	Status      PaymentStatus `json:"status"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return nil
}
