package user

import (
	"regexp"
	"strings"

	"shareit/internal/pkg/errs"
)

var ErrInvalidEmail = errs.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is a validated, lowercased address. Uniqueness is enforced by
// the store, not here.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" || !emailPattern.MatchString(normalized) {
		return Email{}, errs.Mark(errs.Newf("invalid email address: %q", raw), ErrInvalidEmail)
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}
