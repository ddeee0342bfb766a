package services

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrWeakPassword = errors.New("password must be at least 8 characters and mix letters with digits")

const minResetPasswordLength = 8

// CheckResetPassword is the policy for passwords an operator sets through
// the reset-password command. Self-registration accepts any non-empty
// password.
func CheckResetPassword(password string) error {
	if utf8.RuneCountInString(password) < minResetPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	hasLetter := strings.IndexFunc(password, unicode.IsLetter) >= 0
	hasDigit := strings.IndexFunc(password, unicode.IsDigit) >= 0
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
