package users

import (
	"time"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
)

// UserDTO is the transport shape that omits credential material. Driver
// detail is attached only for driver-role users.
type UserDTO struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Role      enums.UserRole `json:"role"`
	Driver    *DriverDTO     `json:"driver,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

// DriverDTO carries the driver-only attributes of a user.
type DriverDTO struct {
	Status            enums.DriverStatus `json:"status"`
	CurrentPostalCode *string            `json:"current_postal_code,omitempty"`
}

// CreateUserInput holds the payload to register a user.
type CreateUserInput struct {
	Name              string
	Email             string
	Phone             string
	Password          string
	Role              string
	CurrentPostalCode *string
}

// UpdateUserInput carries a partial update. Empty fields keep the stored
// value; a non-empty password re-derives both hash and salt.
type UpdateUserInput struct {
	Name              string
	Email             string
	Phone             string
	Password          string
	CurrentPostalCode *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	dto := &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.IsDriver() {
		dto.Driver = &DriverDTO{
			Status:            u.DriverStatus,
			CurrentPostalCode: u.CurrentPostalCode,
		}
	}
	return dto
}

func fromModels(rows []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
