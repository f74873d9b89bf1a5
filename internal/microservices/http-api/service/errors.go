package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidPage        = errors.New("invalid page")

	ErrPlatformNotFound  = errors.New("stream platform not found")
	ErrWatchListNotFound = errors.New("watchlist not found")
	ErrReviewNotFound    = errors.New("review not found")

	// ErrAlreadyReviewed is returned when the user already reviewed the title.
	ErrAlreadyReviewed = errors.New("You have already reviewed this movie!")
)

// FieldErrors carries per-field validation messages, rendered as
// {"field": ["message", ...]} by the API layer.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(f[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// errOrNil returns f as an error only when it holds messages.
func (f FieldErrors) errOrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}
