package errors

import (
	"strings"
	"unicode"
)

// MaxChallengeDigits bounds the length of a hex challenge string.
const MaxChallengeDigits = 64

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Absolute and relative paths are both allowed; the caller reads files the
// user named explicitly.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateChallenge validates a hex challenge string such as "0x2f" or
// "2F". An optional 0x prefix is accepted; at least one digit is required.
func ValidateChallenge(s string) error {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if digits == "" {
		return New(ErrCodeInvalidInput, "challenge cannot be empty")
	}
	if len(digits) > MaxChallengeDigits {
		return New(ErrCodeInvalidInput, "challenge too long (max %d hex digits)", MaxChallengeDigits)
	}
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return New(ErrCodeInvalidInput, "challenge must be hexadecimal: %q", s)
		}
	}
	return nil
}

// ValidateRounds validates the number of proof rounds requested.
func ValidateRounds(n int) error {
	if n < 1 || n > MaxChallengeDigits*4 {
		return New(ErrCodeInvalidInput, "rounds must be between 1 and %d, got %d", MaxChallengeDigits*4, n)
	}
	return nil
}
