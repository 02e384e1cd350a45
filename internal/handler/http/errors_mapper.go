package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrItemNotFound:        http.StatusNotFound,

	store.ErrItemNotFound:      http.StatusNotFound,
	store.ErrItemAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
