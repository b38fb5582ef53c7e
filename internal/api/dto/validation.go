package dto

import (
	"net/mail"
	"strings"

	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// fieldErrors collects per-field problems and turns them into one validation error.
type fieldErrors map[string]any

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f fieldErrors) email(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(value)); err != nil {
		f[field] = "must be a valid email"
	}
}

func (f fieldErrors) nonNegative(field string, value int64) {
	if value < 0 {
		f[field] = "must not be negative"
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("invalid payload", f)
}
