// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crm-gateway/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// Instead of chi's 405 it answers 404 for a known path requested with an
// unregistered method, so callers cannot probe which routes exist. Only exact
// route patterns are compared.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routes := router.Routes()
		i := slices.IndexFunc(routes, func(route chi.Route) bool {
			return route.Pattern == r.URL.Path
		})

		if i < 0 {
			utils.WriteError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), nil)
			return
		}
		if _, ok := routes[i].Handlers[r.Method]; !ok {
			utils.WriteError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), nil)
			return
		}

		router.ServeHTTP(w, r)
	}
}
