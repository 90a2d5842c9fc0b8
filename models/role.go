package models

import (
	"time"

	"gorm.io/gorm"
)

// Role names used across the platform. Every user carries exactly one.
const (
	RoleClient   = "client"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// IsKnownRole reports whether name is one of the platform roles.
func IsKnownRole(name string) bool {
	switch name {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}
