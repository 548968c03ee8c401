package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/votelab/evote-api/internal/apperror"
)

func TestEventValidationTitle(t *testing.T) {
	v := EventValidation{}

	assert.NoError(t, v.ValidateTitle("Annual Election"))
	assert.ErrorIs(t, v.ValidateTitle(""), apperror.ErrValidation)
	assert.ErrorIs(t, v.ValidateTitle("   "), apperror.ErrValidation)
	assert.ErrorIs(t, v.ValidateTitle(strings.Repeat("x", 201)), apperror.ErrValidation)
}

func TestEventValidationDescription(t *testing.T) {
	v := EventValidation{}

	assert.NoError(t, v.ValidateDescription("Vote for the next chair"))
	assert.ErrorIs(t, v.ValidateDescription(""), apperror.ErrValidation)
	assert.ErrorIs(t, v.ValidateDescription(strings.Repeat("x", 2001)), apperror.ErrValidation)
}

func TestUserValidationPassword(t *testing.T) {
	v := UserValidation{}

	assert.NoError(t, v.ValidatePassword("longenough"))
	assert.ErrorIs(t, v.ValidatePassword("short"), apperror.ErrValidation)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("voter@example.com"))
	assert.ErrorIs(t, ValidateEmail("not-an-email"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateEmail("@example.com"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateEmail("voter@"), apperror.ErrValidation)
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateDateRange(start, start.AddDate(0, 1, 0)))
	assert.ErrorIs(t, ValidateDateRange(start, start.AddDate(0, -1, 0)), apperror.ErrValidation)
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("4f2f44a4-9f48-4b39-bd0d-2a62b2c3b2de", "candidateId"))
	assert.ErrorIs(t, ValidateUUID("nope", "candidateId"), apperror.ErrValidation)
}
