package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidationError rejects a single sign-up field with a message fit for the UI.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUsername: 3-20 letters, digits or underscores, not starting with an underscore.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength {
		return &ValidationError{Field: "username", Message: "Username must be at least 3 characters"}
	}
	if len(username) > MaxUsernameLength {
		return &ValidationError{Field: "username", Message: "Username must be at most 20 characters"}
	}
	if !usernameRegex.MatchString(username) {
		return &ValidationError{Field: "username", Message: "Username can only contain letters, numbers, and underscores"}
	}
	if !unicode.IsLetter(rune(username[0])) && !unicode.IsNumber(rune(username[0])) {
		return &ValidationError{Field: "username", Message: "Username must start with a letter or number"}
	}
	return nil
}

func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	if n > MaxPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at most 128 characters"}
	}
	return nil
}

// NormalizeUsername is the form usernames are stored and looked up in.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
