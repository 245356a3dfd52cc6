package controllers

import (
	"net/http"

	"github.com/mrjordantanner/logistics-app-server/api/responses"
	"github.com/mrjordantanner/logistics-app-server/pkg/db"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
	"github.com/mrjordantanner/logistics-app-server/pkg/redis"
)

// HealthLive reports process liveness without touching dependencies.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady verifies the datastore (and redis when configured) before
// reporting ready.
func HealthReady(database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if database == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "database not configured"))
			return
		}
		if err := database.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			return
		}

		checks := map[string]string{"database": "ok"}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
				return
			}
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, checks)
	}
}
