package applock

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPINLength = 4
	MaxPINLength = 12
)

var (
	ErrInvalidPIN = errors.New("invalid PIN")
	ErrPINFormat  = errors.New("PIN must be 4 to 12 digits")
	ErrNoPIN      = errors.New("no PIN set")
)

// ValidatePIN checks length and that every character is a digit.
func ValidatePIN(pin string) error {
	if len(pin) < MinPINLength || len(pin) > MaxPINLength {
		return ErrPINFormat
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrPINFormat
		}
	}
	return nil
}

// HashPIN creates a bcrypt hash of a valid PIN.
func HashPIN(pin string, cost int) (string, error) {
	if err := ValidatePIN(pin); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPIN compares a PIN with its hash.
func CheckPIN(pin, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPIN
		}
		return err
	}
	return nil
}
