package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
)

// AggregateService is the read side: it joins a candidate's profile with
// every sub-record family and applies the interview listing and flag
// derivations. No mutation logic lives here.
type AggregateService interface {
	Get(ctx context.Context, candidateID uuid.UUID) (*models.CandidateAggregate, error)
	List(ctx context.Context, filter models.CandidateFilter) ([]models.CandidateSummary, error)
}

type aggregateService struct {
	candidateRepo  repositories.CandidateRepository
	interviewRepo  repositories.InterviewRepository
	assessmentRepo repositories.AssessmentRepository
	backgroundRepo repositories.BackgroundRepository
	offerRepo      repositories.OfferRepository
	jobRepo        repositories.JobRepository
}

func NewAggregateService(
	candidateRepo repositories.CandidateRepository,
	interviewRepo repositories.InterviewRepository,
	assessmentRepo repositories.AssessmentRepository,
	backgroundRepo repositories.BackgroundRepository,
	offerRepo repositories.OfferRepository,
	jobRepo repositories.JobRepository,
) AggregateService {
	return &aggregateService{
		candidateRepo:  candidateRepo,
		interviewRepo:  interviewRepo,
		assessmentRepo: assessmentRepo,
		backgroundRepo: backgroundRepo,
		offerRepo:      offerRepo,
		jobRepo:        jobRepo,
	}
}

// Get implements AggregateService. Sub-record families are fetched in
// parallel; the first failure cancels the rest.
func (s *aggregateService) Get(ctx context.Context, candidateID uuid.UUID) (*models.CandidateAggregate, error) {
	candidate, err := s.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	var (
		interviews  []models.InterviewRecord
		assessments []models.AssessmentRecord
		backgrounds []models.BackgroundRecord
		offers      []models.OfferRecord
		jobs        []models.JobPosting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interviews, err = s.interviewRepo.FindByCandidate(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		assessments, err = s.assessmentRepo.FindByCandidate(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		backgrounds, err = s.backgroundRepo.FindByCandidate(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		offers, err = s.offerRepo.FindByCandidate(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.jobRepo.FindByCandidate(gctx, candidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.CandidateAggregate{
		Candidate:     *candidate,
		OpenSchedules: openSchedules(interviews),
		Outcomes:      dedupedOutcomes(interviews),
		Assessments:   assessments,
		Backgrounds:   backgrounds,
		Offers:        offers,
		Jobs:          jobs,
		DerivedFlags: models.DerivedFlags{
			WasEliminated: wasEliminated(interviews),
			HadOffer:      len(offers) > 0,
		},
	}, nil
}

// List implements AggregateService. Flags are recomputed per row from the
// same histories the detail view reads.
func (s *aggregateService) List(ctx context.Context, filter models.CandidateFilter) ([]models.CandidateSummary, error) {
	candidates, err := s.candidateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CandidateSummary, 0, len(candidates))
	for i := range candidates {
		candidate := candidates[i]

		var (
			interviews []models.InterviewRecord
			offers     []models.OfferRecord
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			interviews, err = s.interviewRepo.FindByCandidate(gctx, candidate.ID)
			return err
		})
		g.Go(func() error {
			var err error
			offers, err = s.offerRepo.FindByCandidate(gctx, candidate.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		summaries = append(summaries, models.CandidateSummary{
			Candidate: candidate,
			DerivedFlags: models.DerivedFlags{
				WasEliminated: wasEliminated(interviews),
				HadOffer:      len(offers) > 0,
			},
		})
	}
	return summaries, nil
}
