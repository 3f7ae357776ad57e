package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"recruitops/pipeline-api/internal/models"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrCandidateNotFound, fiber.StatusNotFound},
		{models.ErrInterviewNotFound, fiber.StatusNotFound},
		{models.ErrDictionaryEntryNotFound, fiber.StatusNotFound},
		{models.ErrJobNotFound, fiber.StatusNotFound},
		{models.ErrAssessmentNotFound, fiber.StatusNotFound},
		{models.ErrBackgroundNotFound, fiber.StatusNotFound},
		{models.ErrOfferNotFound, fiber.StatusNotFound},
		{models.ErrCannotCancelDecidedInterview, fiber.StatusConflict},
		{models.ErrRoundAlreadyUsed, fiber.StatusConflict},
		{models.ErrStoreUnavailable, fiber.StatusServiceUnavailable},
		{models.ErrMissingDictionaryDefault, fiber.StatusInternalServerError},
		{errors.New("boom"), fiber.StatusInternalServerError},
		{fmt.Errorf("looking up candidate: %w", models.ErrCandidateNotFound), fiber.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestErrorKind_SubRecordsNotInternal(t *testing.T) {
	assert.Equal(t, "assessment_not_found", errorKind(models.ErrAssessmentNotFound))
	assert.Equal(t, "background_not_found", errorKind(models.ErrBackgroundNotFound))
	assert.Equal(t, "offer_not_found", errorKind(models.ErrOfferNotFound))
	assert.Equal(t, "round_already_used", errorKind(models.ErrRoundAlreadyUsed))
}

func TestWithRetry_RetriesTransientStoreFailure(t *testing.T) {
	attempts := 0
	err := withRetry(func() error {
		attempts++
		if attempts == 1 {
			return models.ErrStoreUnavailable
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_SingleRetryOnly(t *testing.T) {
	attempts := 0
	err := withRetry(func() error {
		attempts++
		return models.ErrStoreUnavailable
	})
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_NoRetryOnOtherErrors(t *testing.T) {
	attempts := 0
	err := withRetry(func() error {
		attempts++
		return models.ErrCandidateNotFound
	})
	assert.ErrorIs(t, err, models.ErrCandidateNotFound)
	assert.Equal(t, 1, attempts)
}
