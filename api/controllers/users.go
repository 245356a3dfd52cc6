package controllers

import (
	"net/http"
	"strings"

	"github.com/mrjordantanner/logistics-app-server/api/responses"
	"github.com/mrjordantanner/logistics-app-server/api/validators"
	usersvc "github.com/mrjordantanner/logistics-app-server/internal/users"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
)

type createUserRequest struct {
	Name              string  `json:"name" validate:"required"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone" validate:"required,max=15"`
	Password          string  `json:"password" validate:"required,min=8"`
	Role              string  `json:"role,omitempty"`
	CurrentPostalCode *string `json:"current_postal_code,omitempty"`
}

type updateUserRequest struct {
	Name              string  `json:"name,omitempty"`
	Email             string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string  `json:"phone,omitempty" validate:"omitempty,max=15"`
	Password          string  `json:"password,omitempty" validate:"omitempty,min=8"`
	CurrentPostalCode *string `json:"current_postal_code,omitempty"`
}

type updateDriverStatusRequest struct {
	Status            string  `json:"status" validate:"required"`
	CurrentPostalCode *string `json:"current_postal_code,omitempty"`
}

// CreateUser registers a new account. Default role is driver.
func CreateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.CreateUser(r.Context(), usersvc.CreateUserInput{
			Name:              payload.Name,
			Email:             payload.Email,
			Phone:             payload.Phone,
			Password:          payload.Password,
			Role:              payload.Role,
			CurrentPostalCode: payload.CurrentPostalCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

func ListUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, users)
	}
}

func GetUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UpdateUser applies a partial update. Omitted fields keep their stored
// values.
func UpdateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateUser(r.Context(), id, usersvc.UpdateUserInput{
			Name:              payload.Name,
			Email:             payload.Email,
			Phone:             payload.Phone,
			Password:          payload.Password,
			CurrentPostalCode: payload.CurrentPostalCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func DeleteUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteUser(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func ListDrivers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drivers, err := svc.ListDrivers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, drivers)
	}
}

// UpdateDriverStatus sets a driver's availability and, optionally, their
// reported postal code.
func UpdateDriverStatus(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateDriverStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseDriverStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid driver status"))
			return
		}

		driver, err := svc.UpdateDriverStatus(r.Context(), id, status, payload.CurrentPostalCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, driver)
	}
}
