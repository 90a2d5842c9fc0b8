package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

var (
	// ErrInvalidStatusTransition is returned when a requested status change
	// is not in the allowed transition table.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	// ErrStaleStatus is returned when the stored status changed between read
	// and write, i.e. a concurrent transition won the race.
	ErrStaleStatus = errors.New("reservation status changed concurrently")
)

// ValidationError reports a bad field value on create or update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Reservation is the normalized booking record. Client, provider, service
// and payment are referenced by id only; display data comes from the
// preloaded associations.
type Reservation struct {
	gorm.Model
	ReservationDate time.Time         `json:"reservation_date"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	TotalPriceCents int64             `json:"total_price_cents"`
	Status          ReservationStatus `json:"status"`
	PropertyName    string            `json:"property_name"`
	Comments        string            `json:"comments"`
	ServiceList     string            `json:"service_list"`
	ClientID        uint              `json:"client_id"`
	Client          User              `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID      uint              `json:"provider_id"`
	Provider        User              `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID       uint              `json:"service_id"`
	Service         Service           `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	PaymentID       uint              `json:"payment_id"`
	Payment         Payment           `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = StatusPending
	}
	return r.Validate()
}

// Validate checks the field invariants that must hold on every create
// and update.
func (r *Reservation) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	if !sameDay(r.StartTime, r.ReservationDate) {
		return &ValidationError{Field: "start_time", Reason: "must fall on reservation_date"}
	}
	if !sameDay(r.EndTime, r.ReservationDate) {
		return &ValidationError{Field: "end_time", Reason: "must fall on reservation_date"}
	}
	if r.TotalPriceCents < 0 {
		return &ValidationError{Field: "total_price_cents", Reason: "must not be negative"}
	}
	if r.ClientID == 0 {
		return &ValidationError{Field: "client_id", Reason: "required"}
	}
	if r.ProviderID == 0 {
		return &ValidationError{Field: "provider_id", Reason: "required"}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CanTransition reports whether moving from one status to another is
// allowed. Rejected, cancelled and completed are terminal.
func CanTransition(from, to ReservationStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusRejected
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Transition moves the reservation to newStatus with a compare-and-set
// against the status currently stored, so two concurrent requests cannot
// both win a transition out of the same state. On success the receiver's
// Status and UpdatedAt reflect the stored row.
func (r *Reservation) Transition(tx *gorm.DB, newStatus ReservationStatus) error {
	if !CanTransition(r.Status, newStatus) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, r.Status, newStatus)
	}

	now := time.Now()
	res := tx.Model(&Reservation{}).
		Where("id = ? AND status = ?", r.ID, r.Status).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// The guard row did not match: someone else moved the status first.
		return fmt.Errorf("%w: reservation %d", ErrStaleStatus, r.ID)
	}

	r.Status = newStatus
	r.UpdatedAt = now
	return nil
}
