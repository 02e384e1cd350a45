package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(op string, resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorBody(resp)

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w: %s", op, ErrNotFound, body)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w: %s", op, ErrValidation, body)
	default:
		return &TransportError{
			Op:         op,
			Kind:       KindBadStatus,
			StatusCode: resp.StatusCode(),
			Err:        errors.New(body),
		}
	}
}

// errorBody prefers the backend's {"error": "..."} message over the raw body.
func errorBody(resp *resty.Response) string {
	if e, ok := resp.Error().(*utils.ErrorResponse); ok && e != nil && e.Error != "" {
		return e.Error
	}
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return body
}
