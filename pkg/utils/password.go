package utils

import "unicode"

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

// IsStrongPassword requires 6 to 128 characters with at least one
// lowercase letter, one uppercase letter and one digit.
func IsStrongPassword(password string) bool {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return false
	}

	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
