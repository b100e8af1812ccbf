package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is matched by every FieldErrors value.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors collects the failed rules of one validation run, in field order.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// collector gathers field errors and returns nil when nothing failed.
type collector struct {
	errs FieldErrors
}

func (c *collector) add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// scope reports which fields to check. No fields means all known fields.
func scope(known []string, fields []string) (map[string]bool, error) {
	selected := make(map[string]bool, len(known))
	if len(fields) == 0 {
		for _, f := range known {
			selected[f] = true
		}
		return selected, nil
	}

	for _, f := range fields {
		found := false
		for _, k := range known {
			if k == f {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Join(ErrUnknownField, errors.New(f))
		}
		selected[f] = true
	}
	return selected, nil
}
