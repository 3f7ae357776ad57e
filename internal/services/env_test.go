package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
)

// testEnv wires the full service graph over the in-memory fakes with a
// dictionary matching the seeded defaults.
type testEnv struct {
	candidates  *fakeCandidateRepo
	interviews  *fakeInterviewRepo
	dictionary  *fakeDictionaryRepo
	offers      *fakeOfferRepo
	assessments *fakeAssessmentRepo
	backgrounds *fakeBackgroundRepo
	jobs        *fakeJobRepo

	resolver     DictionaryResolver
	pipeline     PipelineService
	interviewSvc InterviewService
	aggregate    AggregateService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		candidates:  newFakeCandidateRepo(),
		interviews:  newFakeInterviewRepo(),
		dictionary:  newFakeDictionaryRepo(),
		offers:      newFakeOfferRepo(),
		assessments: newFakeAssessmentRepo(),
		backgrounds: newFakeBackgroundRepo(),
		jobs:        newFakeJobRepo(),
	}

	env.dictionary.addCategory(models.CategoryCandidateStatus,
		models.CandidateStatusNew,
		models.CandidateStatusPendingAssessment,
		models.CandidateStatusAssessment,
		models.CandidateStatusPendingInterview,
		models.CandidateStatusInterview,
		models.CandidateStatusBackgroundCheck,
		models.CandidateStatusPendingOffer,
		models.CandidateStatusOffer,
		models.CandidateStatusHired,
		models.CandidateStatusRejected,
	)
	env.dictionary.addCategory(models.CategoryInterviewStatus,
		models.InterviewStatusScheduled,
		models.InterviewStatusInProgress,
		models.InterviewStatusCompleted,
		models.InterviewStatusCancelled,
	)
	env.dictionary.addCategory(models.CategoryInterviewConclusion,
		models.ConclusionUndecided,
		models.ConclusionPass,
		models.ConclusionReject,
	)
	env.dictionary.addCategory(models.CategoryInterviewMethod, "onsite", "video", "phone")

	logger := zap.NewNop()
	env.resolver = NewDictionaryResolver(env.dictionary, logger)
	env.pipeline = NewPipelineService(env.candidates, env.interviews, env.offers, env.resolver, logger)
	env.interviewSvc = NewInterviewService(env.interviews, env.candidates, env.resolver, env.pipeline, logger)
	env.aggregate = NewAggregateService(env.candidates, env.interviews, env.assessments, env.backgrounds, env.offers, env.jobs)
	return env
}

func (e *testEnv) addCandidate(status string) uuid.UUID {
	candidate := &models.Candidate{
		ID:            uuid.New(),
		Name:          "张伟",
		CurrentStatus: status,
	}
	_ = e.candidates.Create(context.Background(), candidate)
	return candidate.ID
}
