// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/utils"
)

// methodNotAllowed replaces chi's plain-text 405 with the JSON error body
// every other endpoint uses. chi has already set the Allow header.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, "method "+r.Method+" not allowed", http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, "no route for "+r.URL.Path, http.StatusNotFound)
}
