package models

import "errors"

// Sentinel errors for the pipeline core. Handlers map these to HTTP statuses;
// everything else is treated as an internal failure.
var (
	ErrCandidateNotFound            = errors.New("candidate not found")
	ErrInterviewNotFound            = errors.New("interview record not found")
	ErrCannotCancelDecidedInterview = errors.New("interview already has a decision and cannot be cancelled")
	ErrRoundAlreadyUsed             = errors.New("interview round already used for this candidate")
	ErrAssessmentNotFound           = errors.New("assessment record not found")
	ErrBackgroundNotFound           = errors.New("background record not found")
	ErrOfferNotFound                = errors.New("offer record not found")
	ErrMissingDictionaryDefault     = errors.New("dictionary category has no entries configured")
	ErrDictionaryEntryNotFound      = errors.New("dictionary entry not found")
	ErrJobNotFound                  = errors.New("job posting not found")
	ErrStoreUnavailable             = errors.New("store unavailable")
)
