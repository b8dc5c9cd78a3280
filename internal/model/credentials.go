package model

// credentials.go defines validated value objects for the two inputs that
// cross the registration boundary. Construction fails fast on malformed
// input so handlers never pass an unchecked email or password further down.

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidEmail is returned when an email fails format validation.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when a password violates the policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// emailRe is intentionally permissive: one @, no spaces, a dot in the
// domain part. Stricter parsing belongs to the mail server, not here.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 8

// Email is a validated, immutable email address. The stored form keeps the
// original casing; uniqueness in the store is case-sensitive.
type Email struct{ raw string }

// NewEmail trims surrounding whitespace and validates the format.
func NewEmail(raw string) (Email, error) {
	s := strings.TrimSpace(raw)
	if s == "" || !emailRe.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{raw: s}, nil
}

func (e Email) String() string { return e.raw }

// Password is a validated plaintext password. It exists only between
// request binding and hashing; it is never logged or persisted.
type Password struct{ raw string }

// NewPassword enforces the minimum length policy.
func NewPassword(raw string) (Password, error) {
	if len(raw) < minPasswordLen {
		return Password{}, ErrWeakPassword
	}
	return Password{raw: raw}, nil
}

func (p Password) String() string { return p.raw }
