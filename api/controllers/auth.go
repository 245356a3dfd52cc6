package controllers

import (
	"net/http"

	"github.com/mrjordantanner/logistics-app-server/api/responses"
	"github.com/mrjordantanner/logistics-app-server/api/validators"
	authsvc "github.com/mrjordantanner/logistics-app-server/internal/auth"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin exchanges email/password credentials for a bearer token.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
