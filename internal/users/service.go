package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db"
	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/security"
)

// Service exposes user and driver management operations.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	GetUser(ctx context.Context, id uint) (*UserDTO, error)
	ListUsers(ctx context.Context) ([]UserDTO, error)
	UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*UserDTO, error)
	DeleteUser(ctx context.Context, id uint) error
	ListDrivers(ctx context.Context) ([]UserDTO, error)
	UpdateDriverStatus(ctx context.Context, id uint, status enums.DriverStatus, postalCode *string) (*UserDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a user service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// CreateUser validates the payload, derives the credential pair, and persists
// the user. Duplicate emails surface as a conflict.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	switch {
	case name == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	case len(name) > 100:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name exceeds 100 characters")
	case email == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	case !strings.Contains(email, "@"):
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is not valid")
	case phone == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	case len(phone) > 15:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone exceeds 15 characters")
	case input.Password == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	role := enums.UserRoleDriver
	if strings.TrimSpace(input.Role) != "" {
		parsed, err := enums.ParseUserRole(input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be admin or driver")
		}
		role = parsed
	}

	hash, salt, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "derive password hash")
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		Phone:             phone,
		PasswordHash:      hash,
		PasswordSalt:      salt,
		Role:              role,
		CurrentPostalCode: input.CurrentPostalCode,
		DriverStatus:      enums.DriverStatusAvailable,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	return FromModel(created), nil
}

// GetUser loads a single user by ID.
func (s *service) GetUser(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// ListUsers returns every user.
func (s *service) ListUsers(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	return fromModels(rows), nil
}

// UpdateUser merges the provided fields onto the stored user. Empty incoming
// fields keep the existing value; a non-empty password re-derives both hash
// and salt. UpdatedAt is always refreshed.
func (s *service) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		if len(name) > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name exceeds 100 characters")
		}
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		if !strings.Contains(email, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is not valid")
		}
		user.Email = email
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		if len(phone) > 15 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone exceeds 15 characters")
		}
		user.Phone = phone
	}
	if input.Password != "" {
		hash, salt, err := security.HashPassword(input.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "derive password hash")
		}
		user.PasswordHash = hash
		user.PasswordSalt = salt
	}
	if input.CurrentPostalCode != nil {
		user.CurrentPostalCode = input.CurrentPostalCode
	}

	now := s.now().UTC()
	user.UpdatedAt = &now

	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return FromModel(updated), nil
}

// DeleteUser removes a user. Deliveries referencing a driver block the
// delete at the database level.
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "driver is assigned to deliveries")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}

// ListDrivers returns driver-role users only.
func (s *service) ListDrivers(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.ListByRole(ctx, enums.UserRoleDriver)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list drivers")
	}
	return fromModels(rows), nil
}

// UpdateDriverStatus sets a driver's availability and, optionally, their
// current postal code. Non-driver users are rejected.
func (s *service) UpdateDriverStatus(ctx context.Context, id uint, status enums.DriverStatus, postalCode *string) (*UserDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be available or unavailable")
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsDriver() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user is not a driver")
	}

	user.DriverStatus = status
	if postalCode != nil {
		user.CurrentPostalCode = postalCode
	}
	now := s.now().UTC()
	user.UpdatedAt = &now

	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update driver status")
	}
	return FromModel(updated), nil
}

func (s *service) loadUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return user, nil
}
