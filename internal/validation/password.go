package validation

import (
	"errors"
	"strings"
)

var commonPatterns = []string{
	"password", "123456", "qwerty", "letmein", "welcome",
}

// ValidatePassword enforces minimum strength: 12 characters at least, 72
// bytes at most (bcrypt truncates beyond that), and none of the usual
// throwaway patterns.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return errors.New("password must be at least 12 characters")
	}
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}
