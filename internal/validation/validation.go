// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowerRegex    = regexp.MustCompile(`[a-z]`)
	upperRegex    = regexp.MustCompile(`[A-Z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("Username must be at least 3 characters")
	}

	if len(username) > 30 {
		return fmt.Errorf("Username must not exceed 30 characters")
	}

	// Only allow alphanumeric and underscores
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("Username can only contain letters, numbers, and underscores")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("Email is invalid")
	}

	if len(email) > 254 {
		return fmt.Errorf("Email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("Password must be at least 6 characters")
	}

	// Check maximum length (prevent unreasonable inputs)
	if len(password) > 128 {
		return fmt.Errorf("Password must not exceed 128 characters")
	}

	if !lowerRegex.MatchString(password) || !upperRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return fmt.Errorf("Password must contain at least one uppercase letter, one lowercase letter, and one number")
	}

	return nil
}
