package models

import (
	"time"

	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
)

// User is the canonical identity entity. Drivers live in the same table,
// distinguished by Role; the postal code and driver status columns are only
// meaningful for driver-role rows and stay at their defaults for admins.
type User struct {
	ID                uint               `gorm:"primaryKey"`
	Name              string             `gorm:"size:100;not null"`
	Email             string             `gorm:"size:255;not null;uniqueIndex"`
	Phone             string             `gorm:"size:15;not null"`
	PasswordHash      []byte             `gorm:"column:password_hash;not null"`
	PasswordSalt      []byte             `gorm:"column:password_salt;not null"`
	Role              enums.UserRole     `gorm:"size:10;not null;default:'driver'"`
	CurrentPostalCode *string            `gorm:"column:current_postal_code;size:20"`
	DriverStatus      enums.DriverStatus `gorm:"column:driver_status;size:12;not null;default:'available'"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         *time.Time         `gorm:"column:updated_at;autoUpdateTime:false"`
}

// IsDriver reports whether this user carries the driver role.
func (u *User) IsDriver() bool {
	return u != nil && u.Role == enums.UserRoleDriver
}
