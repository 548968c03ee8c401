package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		kind     Kind
	}{
		{Validation("title is required"), ErrValidation, KindValidation},
		{NotFound("Event not found"), ErrNotFound, KindNotFound},
		{Conflict("You have already voted in this event"), ErrConflict, KindConflict},
		{ExternalService("ledger submission failed", errors.New("boom")), ErrExternalService, KindExternalService},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, tc.sentinel)

		kind, ok := KindOf(tc.err)
		assert.True(t, ok)
		assert.Equal(t, tc.kind, kind)
	}

	assert.NotErrorIs(t, Validation("x"), ErrNotFound)
	assert.NotErrorIs(t, Conflict("x"), ErrExternalService)
}

func TestSentinelMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("record vote: %w", Conflict("You have already voted in this event"))

	assert.ErrorIs(t, err, ErrConflict)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindConflict, kind)
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("duplicated key not allowed")
	err := ConflictWrap("You have already voted in this event", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "You have already voted in this event: duplicated key not allowed", err.Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Event not found", Message(NotFound("Event not found")))
	assert.Equal(t, "ledger submission failed", Message(ExternalService("ledger submission failed", errors.New("boom"))))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestKindOfUntagged(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestValidationf(t *testing.T) {
	err := Validationf("page must be >= %d", 1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "page must be >= 1", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "external_service", KindExternalService.String())
}
