package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
)

// RejectionCascader receives interview rejections for candidate-level
// propagation. Satisfied by PipelineService.
type RejectionCascader interface {
	MarkInterviewRejected(ctx context.Context, candidateID uuid.UUID) error
}

// InterviewService owns the interview lifecycle for a candidate: round
// assignment, scheduling, outcome recording, cancellation, and the two
// listing views (open schedules and deduplicated outcomes).
type InterviewService interface {
	NextRound(ctx context.Context, candidateID uuid.UUID) (int, error)
	Schedule(ctx context.Context, candidateID uuid.UUID, req *models.InterviewRequest) (*models.InterviewRecord, error)
	UpdateSchedule(ctx context.Context, candidateID, interviewID uuid.UUID, req *models.InterviewRequest) (*models.InterviewRecord, error)
	RecordOutcome(ctx context.Context, candidateID, interviewID uuid.UUID, req *models.InterviewRequest) (*models.InterviewRecord, error)
	CancelSchedule(ctx context.Context, candidateID, interviewID uuid.UUID) error
	ListOpenSchedules(ctx context.Context, candidateID uuid.UUID) ([]models.InterviewRecord, error)
	ListOutcomes(ctx context.Context, candidateID uuid.UUID) ([]models.InterviewRecord, error)
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	candidateRepo repositories.CandidateRepository
	resolver      DictionaryResolver
	cascade       RejectionCascader
	logger        *zap.Logger
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	candidateRepo repositories.CandidateRepository,
	resolver DictionaryResolver,
	cascade RejectionCascader,
	logger *zap.Logger,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		candidateRepo: candidateRepo,
		resolver:      resolver,
		cascade:       cascade,
		logger:        logger,
	}
}

// NextRound implements InterviewService. Rounds are monotonically assigned
// per candidate; gaps are allowed, repeats are not.
func (s *interviewService) NextRound(ctx context.Context, candidateID uuid.UUID) (int, error) {
	maxRound, err := s.interviewRepo.MaxRound(ctx, candidateID)
	if err != nil {
		return 0, err
	}
	return maxRound + 1, nil
}

// Schedule implements InterviewService.
func (s *interviewService) Schedule(ctx context.Context, candidateID uuid.UUID, req *models.InterviewRequest) (*models.InterviewRecord, error) {
	if _, err := s.candidateRepo.FindByID(ctx, candidateID); err != nil {
		return nil, err
	}

	round := req.Round
	if round <= 0 {
		next, err := s.NextRound(ctx, candidateID)
		if err != nil {
			return nil, err
		}
		round = next
	} else {
		// Rounds never repeat for a candidate, schedules and decided
		// outcomes alike.
		records, err := s.interviewRepo.FindByCandidate(ctx, candidateID)
		if err != nil {
			return nil, err
		}
		for i := range records {
			if records[i].Round == round {
				return nil, fmt.Errorf("round %d: %w", round, models.ErrRoundAlreadyUsed)
			}
		}
	}

	status, err := s.resolver.ResolveValue(ctx, models.CategoryInterviewStatus, models.InterviewStatusScheduled)
	if err != nil {
		return nil, err
	}
	method := req.Method
	if method == "" {
		method, err = s.resolver.ResolveDefault(ctx, models.CategoryInterviewMethod)
	} else {
		method, err = s.resolver.ResolveValue(ctx, models.CategoryInterviewMethod, method)
	}
	if err != nil {
		return nil, err
	}

	interviewTime := strings.TrimSpace(req.Time)
	if interviewTime == "" {
		interviewTime = models.InterviewTimeTBD
	}

	record := &models.InterviewRecord{
		ID:            uuid.New(),
		CandidateID:   candidateID,
		Round:         round,
		InterviewTime: interviewTime,
		Interviewer:   req.Interviewer,
		Method:        method,
		Location:      req.Location,
		Feedback:      req.Feedback,
		Status:        status,
	}
	if err := s.interviewRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("interview scheduled",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("round", round),
		zap.String("time", interviewTime))
	return record, nil
}

// UpdateSchedule implements InterviewService. Edits the planning fields of
// an open schedule; decided records are immutable through this path.
func (s *interviewService) UpdateSchedule(ctx context.Context, candidateID, interviewID uuid.UUID, req *models.InterviewRequest) (*models.InterviewRecord, error) {
	record, err := s.findForCandidate(ctx, candidateID, interviewID)
	if err != nil {
		return nil, err
	}
	if !record.IsOpenSchedule() {
		return nil, models.ErrCannotCancelDecidedInterview
	}

	patch := map[string]interface{}{}
	if t := strings.TrimSpace(req.Time); t != "" {
		patch["interview_time"] = t
	}
	if req.Interviewer != "" {
		patch["interviewer"] = req.Interviewer
	}
	if req.Method != "" {
		method, err := s.resolver.ResolveValue(ctx, models.CategoryInterviewMethod, req.Method)
		if err != nil {
			return nil, err
		}
		patch["method"] = method
	}
	if req.Location != "" {
		patch["location"] = req.Location
	}
	if req.Feedback != "" {
		patch["feedback"] = req.Feedback
	}
	if len(patch) > 0 {
		if err := s.interviewRepo.Update(ctx, interviewID, patch); err != nil {
			return nil, err
		}
	}
	return s.interviewRepo.FindByID(ctx, interviewID)
}

// RecordOutcome implements InterviewService. When interviewID refers to an
// open schedule of the candidate, the outcome lands on that record in
// place; otherwise a fresh outcome row is created at the next round. A
// reject conclusion cascades to the candidate status.
func (s *interviewService) RecordOutcome(ctx context.Context, candidateID, interviewID uuid.UUID, req *models.InterviewRequest) (*models.InterviewRecord, error) {
	if _, err := s.candidateRepo.FindByID(ctx, candidateID); err != nil {
		return nil, err
	}

	completed, err := s.resolver.ResolveValue(ctx, models.CategoryInterviewStatus, models.InterviewStatusCompleted)
	if err != nil {
		return nil, err
	}
	conclusion, err := s.resolver.ResolveValue(ctx, models.CategoryInterviewConclusion, req.Conclusion)
	if err != nil {
		return nil, err
	}

	// Only a confirmed missing record falls through to a fresh outcome row;
	// a store failure here must surface, or a live schedule would be
	// silently duplicated instead of decided in place.
	var target *models.InterviewRecord
	if interviewID != uuid.Nil {
		existing, err := s.interviewRepo.FindByID(ctx, interviewID)
		switch {
		case err == nil:
			if existing.CandidateID == candidateID && existing.IsOpenSchedule() {
				target = existing
			}
		case errors.Is(err, models.ErrInterviewNotFound):
		default:
			return nil, err
		}
	}

	var record *models.InterviewRecord
	if target != nil {
		patch := map[string]interface{}{
			"status":     completed,
			"conclusion": conclusion,
			"feedback":   req.Feedback,
			"ratings":    req.Ratings,
			"tags":       models.JoinTags(req.Tags),
		}
		if err := s.interviewRepo.Update(ctx, target.ID, patch); err != nil {
			return nil, err
		}
		record, err = s.interviewRepo.FindByID(ctx, target.ID)
		if err != nil {
			return nil, err
		}
	} else {
		round, err := s.NextRound(ctx, candidateID)
		if err != nil {
			return nil, err
		}
		record = &models.InterviewRecord{
			ID:            uuid.New(),
			CandidateID:   candidateID,
			Round:         round,
			InterviewTime: models.InterviewTimeTBD,
			Feedback:      req.Feedback,
			Ratings:       req.Ratings,
			Tags:          models.JoinTags(req.Tags),
			Status:        completed,
			Conclusion:    conclusion,
		}
		if err := s.interviewRepo.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	if normalized, ok := record.NormalizedConclusion(); ok && normalized == models.ConclusionReject {
		if err := s.cascade.MarkInterviewRejected(ctx, candidateID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("interview outcome recorded",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("round", record.Round),
		zap.String("conclusion", record.Conclusion))
	return record, nil
}

// CancelSchedule implements InterviewService. Only open schedules may be
// cancelled; a decided record is history and stays.
func (s *interviewService) CancelSchedule(ctx context.Context, candidateID, interviewID uuid.UUID) error {
	record, err := s.findForCandidate(ctx, candidateID, interviewID)
	if err != nil {
		return err
	}
	if !record.IsOpenSchedule() {
		return models.ErrCannotCancelDecidedInterview
	}
	return s.interviewRepo.Delete(ctx, interviewID)
}

// ListOpenSchedules implements InterviewService.
func (s *interviewService) ListOpenSchedules(ctx context.Context, candidateID uuid.UUID) ([]models.InterviewRecord, error) {
	records, err := s.interviewRepo.FindByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return openSchedules(records), nil
}

// ListOutcomes implements InterviewService.
func (s *interviewService) ListOutcomes(ctx context.Context, candidateID uuid.UUID) ([]models.InterviewRecord, error) {
	records, err := s.interviewRepo.FindByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return dedupedOutcomes(records), nil
}

func (s *interviewService) findForCandidate(ctx context.Context, candidateID, interviewID uuid.UUID) (*models.InterviewRecord, error) {
	record, err := s.interviewRepo.FindByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if record.CandidateID != candidateID {
		return nil, models.ErrInterviewNotFound
	}
	return record, nil
}

// openSchedules filters undecided records, ordered by time ascending with
// the undetermined sentinel last.
func openSchedules(records []models.InterviewRecord) []models.InterviewRecord {
	open := make([]models.InterviewRecord, 0)
	for i := range records {
		if records[i].IsOpenSchedule() {
			open = append(open, records[i])
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return timeBefore(open[i].InterviewTime, open[j].InterviewTime)
	})
	return open
}

// dedupedOutcomes filters decided records, collapses duplicate identities
// (last one wins), and orders by round ascending then time descending
// within a round. Historical data contains rows written through more than
// one code path for the same interview event, so callers must never see a
// duplicated identity here.
func dedupedOutcomes(records []models.InterviewRecord) []models.InterviewRecord {
	seen := make(map[string]int)
	outcomes := make([]models.InterviewRecord, 0)
	for i := range records {
		if _, decided := records[i].NormalizedConclusion(); !decided {
			continue
		}
		key := records[i].IdentityKey()
		if at, dup := seen[key]; dup {
			outcomes[at] = records[i]
			continue
		}
		seen[key] = len(outcomes)
		outcomes = append(outcomes, records[i])
	}
	sort.SliceStable(outcomes, func(i, j int) bool {
		if outcomes[i].Round != outcomes[j].Round {
			return outcomes[i].Round < outcomes[j].Round
		}
		return timeBefore(outcomes[j].InterviewTime, outcomes[i].InterviewTime)
	})
	return outcomes
}

// timeBefore orders the stored "2006-01-02 15:04" strings, sorting the
// undetermined sentinel after every concrete moment.
func timeBefore(a, b string) bool {
	if a == models.InterviewTimeTBD {
		return false
	}
	if b == models.InterviewTimeTBD {
		return true
	}
	return a < b
}
