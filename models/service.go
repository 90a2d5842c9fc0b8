package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a catalog entry offered by a provider. The price is stored
// in cents; reservations copy it at booking time so later catalog edits
// do not rewrite history.
type Service struct {
	gorm.Model
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
	PriceCents  int64         `json:"price_cents"`
	ProviderID  uint          `json:"provider_id"`
	Provider    User          `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}
