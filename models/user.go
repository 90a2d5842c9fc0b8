package models

import (
	"time"
)

type User struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Email           string           `json:"email" gorm:"unique"`
	Password        string           `json:"password,omitempty"`
	ProfilePicture  string           `json:"profile_picture"`
	Phone           string           `json:"phone"`
	Address         string           `json:"address"`
	City            string           `json:"city"`
	ZipCode         string           `json:"zip_code"`
	RoleID          uint             `json:"role_id"`
	Role            Role             `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	ProviderDetails *ProviderDetails `json:"provider_details,omitempty" gorm:"foreignKey:UserID"`
	// Accounts are never hard-deleted; a disabled user keeps their history
	// but can no longer log in.
	DisabledAt *time.Time `json:"disabled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsDisabled reports whether the account has been soft-disabled.
func (u *User) IsDisabled() bool {
	return u.DisabledAt != nil
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
