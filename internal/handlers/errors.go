package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"recruitops/pipeline-api/internal/models"
)

// storeRetryDelay is the backoff before the single retry allowed on
// transient store failures at this boundary.
const storeRetryDelay = 200 * time.Millisecond

// withRetry runs op, retrying once when the store reports itself
// unavailable. Validation and not-found failures are never retried.
func withRetry(op func() error) error {
	err := op()
	if errors.Is(err, models.ErrStoreUnavailable) {
		time.Sleep(storeRetryDelay)
		err = op()
	}
	return err
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrCandidateNotFound),
		errors.Is(err, models.ErrInterviewNotFound),
		errors.Is(err, models.ErrDictionaryEntryNotFound),
		errors.Is(err, models.ErrAssessmentNotFound),
		errors.Is(err, models.ErrBackgroundNotFound),
		errors.Is(err, models.ErrOfferNotFound),
		errors.Is(err, models.ErrJobNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrCannotCancelDecidedInterview),
		errors.Is(err, models.ErrRoundAlreadyUsed):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		// Includes ErrMissingDictionaryDefault: an operator setup defect,
		// not a caller problem.
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  errorKind(err),
	})
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, models.ErrCandidateNotFound):
		return "candidate_not_found"
	case errors.Is(err, models.ErrInterviewNotFound):
		return "interview_not_found"
	case errors.Is(err, models.ErrCannotCancelDecidedInterview):
		return "cannot_cancel_decided_interview"
	case errors.Is(err, models.ErrRoundAlreadyUsed):
		return "round_already_used"
	case errors.Is(err, models.ErrAssessmentNotFound):
		return "assessment_not_found"
	case errors.Is(err, models.ErrBackgroundNotFound):
		return "background_not_found"
	case errors.Is(err, models.ErrOfferNotFound):
		return "offer_not_found"
	case errors.Is(err, models.ErrMissingDictionaryDefault):
		return "missing_dictionary_default"
	case errors.Is(err, models.ErrDictionaryEntryNotFound):
		return "dictionary_entry_not_found"
	case errors.Is(err, models.ErrJobNotFound):
		return "job_not_found"
	case errors.Is(err, models.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}
