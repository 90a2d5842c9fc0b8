package policy

import (
	"errors"

	"github.com/servibook/reserva/models"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID uint
	Role   string
}

// Operation names an action a principal may attempt on a resource.
type Operation string

const (
	ViewReservation    Operation = "reservation:view"
	CreateReservation  Operation = "reservation:create"
	ConfirmReservation Operation = "reservation:confirm"
	RejectReservation  Operation = "reservation:reject"
	CancelReservation  Operation = "reservation:cancel"
	ViewUser           Operation = "user:view"
	EditUser           Operation = "user:edit"
	ManageProvider     Operation = "provider:manage"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted")
)

// ReservationOwnership carries the ownership facts needed to decide
// reservation operations. The caller loads the reservation; no I/O
// happens here.
type ReservationOwnership struct {
	ClientID   uint
	ProviderID uint
}

// AuthorizeReservation decides whether p may perform op on a reservation
// owned as described by own. A nil principal fails with
// ErrUnauthenticated on every operation.
func AuthorizeReservation(p *Principal, op Operation, own ReservationOwnership) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if p.Role == models.RoleAdmin {
		// Admins can view and cancel but never act in the provider's stead.
		switch op {
		case ViewReservation, CancelReservation:
			return nil
		}
		return ErrForbidden
	}
	switch op {
	case ViewReservation:
		if p.UserID == own.ClientID || p.UserID == own.ProviderID {
			return nil
		}
	case CreateReservation:
		if p.Role == models.RoleClient {
			return nil
		}
	case ConfirmReservation, RejectReservation:
		if p.Role == models.RoleProvider && p.UserID == own.ProviderID {
			return nil
		}
	case CancelReservation:
		if p.UserID == own.ClientID || p.UserID == own.ProviderID {
			return nil
		}
	}
	return ErrForbidden
}

// AuthorizeUser decides whether p may view or edit the user account
// identified by targetID. Users manage themselves; admins manage anyone.
func AuthorizeUser(p *Principal, op Operation, targetID uint) error {
	if p == nil {
		return ErrUnauthenticated
	}
	switch op {
	case ViewUser, EditUser:
		if p.Role == models.RoleAdmin || p.UserID == targetID {
			return nil
		}
	}
	return ErrForbidden
}

// AuthorizeProviderDetails decides whether p may manage the business
// details owned by ownerID.
func AuthorizeProviderDetails(p *Principal, ownerID uint) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if p.Role == models.RoleAdmin {
		return nil
	}
	if p.Role == models.RoleProvider && p.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}
