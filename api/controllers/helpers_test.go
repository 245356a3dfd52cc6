package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// newParamRouter mounts a single handler on a chi router so URL params
// resolve the way they do in the real route tree.
func newParamRouter(pattern, method string, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Method(method, pattern, handler)
	return r
}
