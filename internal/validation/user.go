// Package validation contains input validation helpers shared by the services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 20
	PasswordMinLength = 8
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks length and the allowed character set.
func ValidateUsername(username string) error {
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return fmt.Errorf("username must be between %d and %d characters", UsernameMinLength, UsernameMaxLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail checks the address shape.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	return nil
}
