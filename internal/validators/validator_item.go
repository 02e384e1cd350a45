package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-todo-sync/models"
)

const (
	FieldID    = "id"
	FieldTitle = "title"
)

// MaxTitleLength is the longest title, in runes, either side accepts.
const MaxTitleLength = 1000

type ItemValidator struct {
}

func NewItemValidator() Validator {
	return &ItemValidator{}
}

// Validate checks items, item ids, and request bodies. Without fields, every
// field meaningful for the type is checked.
func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Item:
		return v.validateItem(ctx, value, fields...)
	case *models.Item:
		return v.validateItem(ctx, *value, fields...)

	case models.CreateItemRequest:
		return v.validateItem(ctx, models.Item{Title: value.Title}, FieldTitle)
	case *models.CreateItemRequest:
		return v.validateItem(ctx, models.Item{Title: value.Title}, FieldTitle)

	case models.UpdateItemRequest:
		return v.validateItem(ctx, models.Item{Title: value.Title}, FieldTitle)
	case *models.UpdateItemRequest:
		return v.validateItem(ctx, models.Item{Title: value.Title}, FieldTitle)

	case models.ItemID:
		return v.validateItem(ctx, models.Item{ID: value}, FieldID)

	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateItem(_ context.Context, item models.Item, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(item.ID.String()) == "" {
				return ErrInvalidItemID
			}
		case FieldTitle:
			if err := ValidateTitle(item.Title); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateTitle reports whether title is acceptable for a to-do item: non-empty
// after trimming whitespace and at most [MaxTitleLength] runes.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
