package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the validation taxonomy. Callers match with
// errors.Is and can show the message directly.
var (
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrAmountTooLarge = errors.New("amount is too large")
	ErrInvalidConcept = errors.New("concept must not be empty")
)

// MaxAmount is the ceiling on any single transaction. It guards against
// input-parsing garbage, not a business rule.
var MaxAmount = decimal.RequireFromString("999999999.99")

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	documentRe = regexp.MustCompile(`^[0-9-]+$`)
	nameRe     = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s'-]+$`)
	codeRe     = regexp.MustCompile(`^[A-Z0-9-]+$`)
)

// Amount checks that a monetary amount is positive, within the global
// ceiling, and has no more than 2 decimal places.
func Amount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	if amount.Exponent() < -2 {
		return fmt.Errorf("amount %s has more than 2 decimal places", amount)
	}
	return nil
}

// Concept checks a transaction concept/description.
func Concept(concept string) error {
	trimmed := strings.TrimSpace(concept)
	if trimmed == "" {
		return ErrInvalidConcept
	}
	if len(trimmed) < 3 {
		return errors.New("concept must have at least 3 characters")
	}
	if len(trimmed) > 500 {
		return errors.New("concept is too long")
	}
	return nil
}

// Username checks a login name: 3..50 chars, letters, digits, dashes,
// underscores.
func Username(username string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("username must not be empty")
	}
	if len(username) < 3 {
		return errors.New("username must have at least 3 characters")
	}
	if len(username) > 50 {
		return errors.New("username must not exceed 50 characters")
	}
	if !usernameRe.MatchString(username) {
		return errors.New("username may only contain letters, digits, dashes and underscores")
	}
	return nil
}

// Password checks a plaintext password against the configured minimum.
func Password(password string, minLength int) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	if len(password) < minLength {
		return fmt.Errorf("password must have at least %d characters", minLength)
	}
	if len(password) > 100 {
		return errors.New("password is too long")
	}
	return nil
}

// Document checks an identity document number: digits and dashes, 6..20.
func Document(document string) error {
	if strings.TrimSpace(document) == "" {
		return errors.New("document must not be empty")
	}
	if !documentRe.MatchString(document) {
		return errors.New("document may only contain digits and dashes")
	}
	if len(document) < 6 {
		return errors.New("document is too short")
	}
	if len(document) > 20 {
		return errors.New("document is too long")
	}
	return nil
}

// PersonName checks a first or last name. The field argument names the
// field in the returned message.
func PersonName(name, field string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if len(name) < 2 {
		return fmt.Errorf("%s must have at least 2 characters", field)
	}
	if len(name) > 100 {
		return fmt.Errorf("%s is too long", field)
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%s contains characters that are not allowed", field)
	}
	return nil
}

// AccountCode checks the shape of a derived account code.
func AccountCode(accountCode string) error {
	if strings.TrimSpace(accountCode) == "" {
		return errors.New("account code must not be empty")
	}
	if len(accountCode) < 2 {
		return errors.New("account code is too short")
	}
	if len(accountCode) > 25 {
		return errors.New("account code is too long")
	}
	if !codeRe.MatchString(accountCode) {
		return errors.New("account code may only contain uppercase letters, digits and dashes")
	}
	return nil
}
