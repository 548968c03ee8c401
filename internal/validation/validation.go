package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/votelab/evote-api/internal/apperror"
)

// ValidateRequired checks that a field is not blank
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation(fieldName + " is required")
	}
	return nil
}

// ValidateMaxLength checks the maximum length of a string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return apperror.Validationf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateUUID checks that a string parses as a UUID
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return apperror.Validation(fieldName + " must be a valid UUID")
	}
	return nil
}

// ValidateEmail checks a basic email shape
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperror.Validation("email must have a valid format")
	}
	return nil
}

// ValidateDateRange checks that the end date does not precede the start date
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return apperror.Validation("endDate must be after startDate")
	}
	return nil
}

// EventValidation contains event-specific validations
type EventValidation struct{}

// ValidateTitle checks an event title
func (v EventValidation) ValidateTitle(title string) error {
	if err := ValidateRequired(title, "title"); err != nil {
		return err
	}
	return ValidateMaxLength(title, 200, "title")
}

// ValidateDescription checks an event description
func (v EventValidation) ValidateDescription(description string) error {
	if err := ValidateRequired(description, "description"); err != nil {
		return err
	}
	return ValidateMaxLength(description, 2000, "description")
}

// UserValidation contains user-specific validations
type UserValidation struct{}

// ValidateName checks a user name
func (v UserValidation) ValidateName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 100, "name")
}

// ValidatePassword checks password strength
func (v UserValidation) ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return apperror.Validation("password must be at least 8 characters long")
	}
	return nil
}
