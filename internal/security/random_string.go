// Package security generates secrets and one-off passwords.
package security

import (
	"crypto/rand"
	"errors"
	"io"
)

const (
	secretAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

	SecretKeyLength = 48
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errBadAlphabet    = errors.New("alphabet must hold between 1 and 256 characters")
)

var randomSource io.Reader = rand.Reader

// RandomString returns length characters drawn uniformly from alphabet.
// Bytes that would bias the result are rejected and redrawn.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errBadAlphabet
	}
	if length == 0 {
		return "", nil
	}

	limit := 256 - 256%len(alphabet)
	value := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(value) < length {
		if _, err := io.ReadFull(randomSource, buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= limit {
				continue
			}
			value = append(value, alphabet[int(b)%len(alphabet)])
			if len(value) == length {
				break
			}
		}
	}
	return string(value), nil
}

// NewSecretKey returns a token signing key for deployments that did not
// configure one.
func NewSecretKey() (string, error) {
	return RandomString(SecretKeyLength, secretAlphabet)
}

// TemporaryPassword returns a password without look-alike characters. It is
// at least 8 characters long and always holds a letter and a digit.
func TemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	for {
		password, err := RandomString(length, passwordAlphabet)
		if err != nil {
			return "", err
		}
		if hasLetterAndDigit(password) {
			return password, nil
		}
	}
}

func hasLetterAndDigit(value string) bool {
	var letter, digit bool
	for _, char := range value {
		switch {
		case char >= '0' && char <= '9':
			digit = true
		default:
			letter = true
		}
	}
	return letter && digit
}
