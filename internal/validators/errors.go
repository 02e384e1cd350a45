package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle    = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title is too long")
	ErrInvalidItemID = errors.New("invalid item id")
)
