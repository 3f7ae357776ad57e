package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
)

// PipelineService applies interview, assessment, background, and offer
// outcomes onto a candidate's overall pipeline status, and computes the
// derived flags read paths report. Candidate status is mutated only here.
type PipelineService interface {
	// MarkInterviewRejected cascades an interview rejection to the
	// candidate status. Idempotent.
	MarkInterviewRejected(ctx context.Context, candidateID uuid.UUID) error
	// RescueCandidate resets a candidate to the entry status. Permitted
	// from any status as a manual override; logged as exceptional.
	RescueCandidate(ctx context.Context, candidateID uuid.UUID) error
	// MarkEliminated records a reject outcome at the next round and then
	// cascades the rejection.
	MarkEliminated(ctx context.Context, candidateID uuid.UUID) error
	// SetStatus moves the candidate to the resolved value of the given
	// symbolic status.
	SetStatus(ctx context.Context, candidateID uuid.UUID, status string) error
	// DerivedFlags recomputes the historical flags from sub-records.
	DerivedFlags(ctx context.Context, candidateID uuid.UUID) (*models.DerivedFlags, error)
}

type pipelineService struct {
	candidateRepo repositories.CandidateRepository
	interviewRepo repositories.InterviewRepository
	offerRepo     repositories.OfferRepository
	resolver      DictionaryResolver
	logger        *zap.Logger
}

func NewPipelineService(
	candidateRepo repositories.CandidateRepository,
	interviewRepo repositories.InterviewRepository,
	offerRepo repositories.OfferRepository,
	resolver DictionaryResolver,
	logger *zap.Logger,
) PipelineService {
	return &pipelineService{
		candidateRepo: candidateRepo,
		interviewRepo: interviewRepo,
		offerRepo:     offerRepo,
		resolver:      resolver,
		logger:        logger,
	}
}

// MarkInterviewRejected implements PipelineService.
func (s *pipelineService) MarkInterviewRejected(ctx context.Context, candidateID uuid.UUID) error {
	candidate, err := s.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return err
	}

	rejected, err := s.resolver.ResolveValue(ctx, models.CategoryCandidateStatus, models.CandidateStatusRejected)
	if err != nil {
		return err
	}
	if candidate.CurrentStatus == rejected {
		return nil
	}

	if err := s.candidateRepo.Update(ctx, candidateID, map[string]interface{}{
		"current_status": rejected,
	}); err != nil {
		return err
	}

	s.logger.Info("candidate rejected",
		zap.String("candidate_id", candidateID.String()),
		zap.String("from", candidate.CurrentStatus))
	return nil
}

// RescueCandidate implements PipelineService.
func (s *pipelineService) RescueCandidate(ctx context.Context, candidateID uuid.UUID) error {
	candidate, err := s.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return err
	}

	entry, err := s.resolver.ResolveValue(ctx, models.CategoryCandidateStatus, models.CandidateStatusNew)
	if err != nil {
		return err
	}

	if err := s.candidateRepo.Update(ctx, candidateID, map[string]interface{}{
		"current_status": entry,
	}); err != nil {
		return err
	}

	// Not constrained by the pipeline order: this re-enters a candidate
	// from any status, so keep an audit trail.
	s.logger.Warn("candidate rescued by manual override",
		zap.String("candidate_id", candidateID.String()),
		zap.String("from", candidate.CurrentStatus),
		zap.String("to", entry))
	return nil
}

// MarkEliminated implements PipelineService. The store offers no
// multi-statement transaction to this layer, so a failure after the outcome
// row is written surfaces loudly for manual reconciliation.
func (s *pipelineService) MarkEliminated(ctx context.Context, candidateID uuid.UUID) error {
	if _, err := s.candidateRepo.FindByID(ctx, candidateID); err != nil {
		return err
	}

	maxRound, err := s.interviewRepo.MaxRound(ctx, candidateID)
	if err != nil {
		return err
	}

	completed, err := s.resolver.ResolveValue(ctx, models.CategoryInterviewStatus, models.InterviewStatusCompleted)
	if err != nil {
		return err
	}
	reject, err := s.resolver.ResolveValue(ctx, models.CategoryInterviewConclusion, models.ConclusionReject)
	if err != nil {
		return err
	}

	record := &models.InterviewRecord{
		ID:            uuid.New(),
		CandidateID:   candidateID,
		Round:         maxRound + 1,
		InterviewTime: models.InterviewTimeTBD,
		Status:        completed,
		Conclusion:    reject,
	}
	if err := s.interviewRepo.Create(ctx, record); err != nil {
		return err
	}

	// The outcome row already exists at this point. The error must not
	// carry the retryable sentinel or the boundary retry would re-run the
	// whole operation and write a second reject row.
	if err := s.MarkInterviewRejected(ctx, candidateID); err != nil {
		return fmt.Errorf("reject outcome recorded but status cascade failed, manual reconciliation required: %v", err)
	}
	return nil
}

// SetStatus implements PipelineService.
func (s *pipelineService) SetStatus(ctx context.Context, candidateID uuid.UUID, status string) error {
	if _, err := s.candidateRepo.FindByID(ctx, candidateID); err != nil {
		return err
	}

	resolved, err := s.resolver.ResolveValue(ctx, models.CategoryCandidateStatus, status)
	if err != nil {
		return err
	}
	return s.candidateRepo.Update(ctx, candidateID, map[string]interface{}{
		"current_status": resolved,
	})
}

// DerivedFlags implements PipelineService. The flags summarize facts that
// change through several independent sub-record writes, so they are computed
// from history on every call and never stored on the candidate row.
func (s *pipelineService) DerivedFlags(ctx context.Context, candidateID uuid.UUID) (*models.DerivedFlags, error) {
	interviews, err := s.interviewRepo.FindByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	offers, err := s.offerRepo.FindByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return &models.DerivedFlags{
		WasEliminated: wasEliminated(interviews),
		HadOffer:      len(offers) > 0,
	}, nil
}

// wasEliminated reports whether any interview in the history normalizes to
// a reject conclusion. Later pass outcomes do not clear it.
func wasEliminated(records []models.InterviewRecord) bool {
	for i := range records {
		if conclusion, ok := records[i].NormalizedConclusion(); ok && conclusion == models.ConclusionReject {
			return true
		}
	}
	return false
}
