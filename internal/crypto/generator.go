package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	MinPasswordLength = 8
	MinPINLength      = 4
)

var (
	ErrLengthTooShort = errors.New("length too short")
	ErrNoClassEnabled = errors.New("at least one character type must be enabled")
)

// LengthError reports a requested length below the applicable floor.
// It matches ErrLengthTooShort with errors.Is.
type LengthError struct {
	Min int
	msg string
}

func (e *LengthError) Error() string { return e.msg }

func (e *LengthError) Unwrap() error { return ErrLengthTooShort }

// PasswordOptions configures the password generator.
type PasswordOptions struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultPasswordOptions returns 16 characters drawn from letters and digits.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{
		Length:    16,
		Lowercase: true,
		Uppercase: true,
		Numbers:   true,
		Symbols:   false,
	}
}

// Classes returns the enabled character classes in pool order.
func (o PasswordOptions) Classes() []CharacterClass {
	var classes []CharacterClass
	if o.Lowercase {
		classes = append(classes, Lowercase)
	}
	if o.Uppercase {
		classes = append(classes, Uppercase)
	}
	if o.Numbers {
		classes = append(classes, Digit)
	}
	if o.Symbols {
		classes = append(classes, Symbol)
	}
	return classes
}

// PINOptions configures the PIN generator.
type PINOptions struct {
	Length int
}

// DefaultPINOptions returns a 4 digit PIN.
func DefaultPINOptions() PINOptions {
	return PINOptions{Length: 4}
}

// GeneratePassword creates a cryptographically secure random password that
// contains at least one character of every enabled class.
func GeneratePassword(opts PasswordOptions) (string, error) {
	return generatePassword(rand.Reader, opts)
}

// GeneratePIN creates a cryptographically secure random numeric PIN.
func GeneratePIN(opts PINOptions) (string, error) {
	return generatePIN(rand.Reader, opts)
}

func generatePassword(src io.Reader, opts PasswordOptions) (string, error) {
	if opts.Length < MinPasswordLength {
		return "", &LengthError{
			Min: MinPasswordLength,
			msg: fmt.Sprintf("password length must be at least %d characters", MinPasswordLength),
		}
	}

	classes := opts.Classes()
	if len(classes) == 0 {
		return "", ErrNoClassEnabled
	}
	if opts.Length < len(classes) {
		return "", &LengthError{
			Min: len(classes),
			msg: fmt.Sprintf("password length must be at least %d to accommodate all required character types", len(classes)),
		}
	}

	result := make([]byte, 0, opts.Length)
	var pool strings.Builder

	// Guarantee at least one character from each enabled class.
	for _, class := range classes {
		ch, err := randChar(src, class.Alphabet())
		if err != nil {
			return "", err
		}
		result = append(result, ch)
		pool.WriteString(class.Alphabet())
	}

	// Fill the remaining positions from the combined pool.
	chars := pool.String()
	for len(result) < opts.Length {
		ch, err := randChar(src, chars)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	// The required characters sit at the front until shuffled.
	if err := secureShuffle(src, result); err != nil {
		return "", err
	}

	return string(result), nil
}

func generatePIN(src io.Reader, opts PINOptions) (string, error) {
	if opts.Length < MinPINLength {
		return "", &LengthError{
			Min: MinPINLength,
			msg: fmt.Sprintf("PIN length must be at least %d digits", MinPINLength),
		}
	}

	pin := make([]byte, opts.Length)
	for i := range pin {
		ch, err := randChar(src, numberChars)
		if err != nil {
			return "", err
		}
		pin[i] = ch
	}
	return string(pin), nil
}

// randChar picks a random character from charset.
func randChar(src io.Reader, charset string) (byte, error) {
	i, err := randomInRange(src, 0, len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// secureShuffle performs a Fisher-Yates shuffle driven by randomInRange.
func secureShuffle(src io.Reader, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := randomInRange(src, 0, i+1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
