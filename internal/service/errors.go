package service

import "errors"

var (
	// ErrSuperseded is returned when a list result, or a mutation built from
	// view data, belongs to a generation that an endpoint switch has already
	// replaced. The view is untouched.
	ErrSuperseded = errors.New("result superseded by endpoint switch")
	// ErrControllerClosed is returned by every operation after Close.
	ErrControllerClosed = errors.New("controller closed")
	// ErrNoEndpoint is returned when the current endpoint could not be
	// built, e.g. after Reconfigure with an invalid URL.
	ErrNoEndpoint = errors.New("no usable endpoint")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrItemNotFound        = errors.New("item not found")
)
