package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"recruitops/pipeline-api/internal/models"
)

// In-memory stand-ins for the repository interfaces. Writes go through the
// same patch-map shape the gorm implementations use.

type fakeCandidateRepo struct {
	mu         sync.Mutex
	candidates map[uuid.UUID]models.Candidate

	// updateErr, when set, fails the next Update call once.
	updateErr error
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[uuid.UUID]models.Candidate)}
}

func (f *fakeCandidateRepo) Create(_ context.Context, candidate *models.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.candidates[candidate.ID] = *candidate
	return nil
}

func (f *fakeCandidateRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	candidate, ok := f.candidates[id]
	if !ok {
		return nil, models.ErrCandidateNotFound
	}
	return &candidate, nil
}

func (f *fakeCandidateRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		err := f.updateErr
		f.updateErr = nil
		return err
	}
	candidate, ok := f.candidates[id]
	if !ok {
		return models.ErrCandidateNotFound
	}
	if status, ok := patch["current_status"].(string); ok {
		candidate.CurrentStatus = status
	}
	if name, ok := patch["name"].(string); ok {
		candidate.Name = name
	}
	if tags, ok := patch["tags"].(string); ok {
		candidate.Tags = tags
	}
	f.candidates[id] = candidate
	return nil
}

func (f *fakeCandidateRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.candidates[id]; !ok {
		return models.ErrCandidateNotFound
	}
	delete(f.candidates, id)
	return nil
}

func (f *fakeCandidateRepo) List(_ context.Context, filter models.CandidateFilter) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Candidate, 0, len(f.candidates))
	for _, candidate := range f.candidates {
		if filter.Status != "" && candidate.CurrentStatus != filter.Status {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(candidate.Name, filter.Keyword) {
			continue
		}
		out = append(out, candidate)
	}
	return out, nil
}

// fakeInterviewRepo keeps records in insertion order. Legacy rows may
// carry a nil id, so a slice rather than an id-keyed map.
type fakeInterviewRepo struct {
	mu      sync.Mutex
	records []models.InterviewRecord

	// findErr, when set, fails every FindByID call.
	findErr error
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{}
}

func (f *fakeInterviewRepo) Create(_ context.Context, record *models.InterviewRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeInterviewRepo) FindByID(_ context.Context, id uuid.UUID) (*models.InterviewRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.records {
		if f.records[i].ID != uuid.Nil && f.records[i].ID == id {
			record := f.records[i]
			return &record, nil
		}
	}
	return nil, models.ErrInterviewNotFound
}

func (f *fakeInterviewRepo) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]models.InterviewRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.InterviewRecord, 0)
	for _, record := range f.records {
		if record.CandidateID == candidateID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) MaxRound(_ context.Context, candidateID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, record := range f.records {
		if record.CandidateID == candidateID && record.Round > max {
			max = record.Round
		}
	}
	return max, nil
}

func (f *fakeInterviewRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		record := f.records[i]
		for key, value := range patch {
			switch key {
			case "status":
				record.Status = value.(string)
			case "conclusion":
				record.Conclusion = value.(string)
			case "feedback":
				record.Feedback = value.(string)
			case "ratings":
				record.Ratings = value.(int)
			case "tags":
				record.Tags = value.(string)
			case "interview_time":
				record.InterviewTime = value.(string)
			case "interviewer":
				record.Interviewer = value.(string)
			case "method":
				record.Method = value.(string)
			case "location":
				record.Location = value.(string)
			}
		}
		f.records[i] = record
		return nil
	}
	return models.ErrInterviewNotFound
}

func (f *fakeInterviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return models.ErrInterviewNotFound
}

// seed places a record directly, bypassing the service, the way legacy data
// arrived.
func (f *fakeInterviewRepo) seed(record models.InterviewRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
}

type fakeDictionaryRepo struct {
	mu        sync.Mutex
	entries   map[string][]models.DictionaryEntry
	queries   map[string]int
	listDelay time.Duration
}

func newFakeDictionaryRepo() *fakeDictionaryRepo {
	return &fakeDictionaryRepo{
		entries: make(map[string][]models.DictionaryEntry),
		queries: make(map[string]int),
	}
}

func (f *fakeDictionaryRepo) addCategory(category string, names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for order, name := range names {
		f.entries[category] = append(f.entries[category], models.DictionaryEntry{
			ID:           uuid.New(),
			Category:     category,
			Name:         name,
			DisplayOrder: order,
		})
	}
}

func (f *fakeDictionaryRepo) queryCount(category string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[category]
}

func (f *fakeDictionaryRepo) ListByCategory(_ context.Context, category string) ([]models.DictionaryEntry, error) {
	f.mu.Lock()
	f.queries[category]++
	entries := append([]models.DictionaryEntry(nil), f.entries[category]...)
	delay := f.listDelay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return entries, nil
}

func (f *fakeDictionaryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.DictionaryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entries := range f.entries {
		for _, entry := range entries {
			if entry.ID == id {
				return &entry, nil
			}
		}
	}
	return nil, models.ErrDictionaryEntryNotFound
}

func (f *fakeDictionaryRepo) Create(_ context.Context, entry *models.DictionaryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entry.Category] = append(f.entries[entry.Category], *entry)
	return nil
}

func (f *fakeDictionaryRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for category, entries := range f.entries {
		for i, entry := range entries {
			if entry.ID != id {
				continue
			}
			if name, ok := patch["name"].(string); ok {
				entry.Name = name
			}
			if order, ok := patch["display_order"].(int); ok {
				entry.DisplayOrder = order
			}
			f.entries[category][i] = entry
			return nil
		}
	}
	return models.ErrDictionaryEntryNotFound
}

func (f *fakeDictionaryRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for category, entries := range f.entries {
		for i, entry := range entries {
			if entry.ID == id {
				f.entries[category] = append(entries[:i], entries[i+1:]...)
				return nil
			}
		}
	}
	return models.ErrDictionaryEntryNotFound
}

type fakeOfferRepo struct {
	mu      sync.Mutex
	records []models.OfferRecord
}

func newFakeOfferRepo() *fakeOfferRepo { return &fakeOfferRepo{} }

func (f *fakeOfferRepo) Create(_ context.Context, record *models.OfferRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeOfferRepo) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]models.OfferRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.OfferRecord, 0)
	for _, record := range f.records {
		if record.CandidateID == candidateID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, record := range f.records {
		if record.ID != id {
			continue
		}
		if status, ok := patch["status"].(string); ok {
			record.Status = status
		}
		f.records[i] = record
		return nil
	}
	return models.ErrCandidateNotFound
}

type fakeAssessmentRepo struct {
	mu      sync.Mutex
	records []models.AssessmentRecord
}

func newFakeAssessmentRepo() *fakeAssessmentRepo { return &fakeAssessmentRepo{} }

func (f *fakeAssessmentRepo) Create(_ context.Context, record *models.AssessmentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAssessmentRepo) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]models.AssessmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.AssessmentRecord, 0)
	for _, record := range f.records {
		if record.CandidateID == candidateID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAssessmentRepo) Update(_ context.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

type fakeBackgroundRepo struct {
	mu      sync.Mutex
	records []models.BackgroundRecord
}

func newFakeBackgroundRepo() *fakeBackgroundRepo { return &fakeBackgroundRepo{} }

func (f *fakeBackgroundRepo) Create(_ context.Context, record *models.BackgroundRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeBackgroundRepo) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]models.BackgroundRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.BackgroundRecord, 0)
	for _, record := range f.records {
		if record.CandidateID == candidateID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeBackgroundRepo) Update(_ context.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

type fakeJobRepo struct {
	mu    sync.Mutex
	jobs  map[uuid.UUID]models.JobPosting
	links map[uuid.UUID][]uuid.UUID
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:  make(map[uuid.UUID]models.JobPosting),
		links: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.JobPosting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*models.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, models.ErrJobNotFound
	}
	return &job, nil
}

func (f *fakeJobRepo) List(_ context.Context) ([]models.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.JobPosting, 0, len(f.jobs))
	for _, job := range f.jobs {
		out = append(out, job)
	}
	return out, nil
}

func (f *fakeJobRepo) Link(_ context.Context, candidateID, jobID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links[candidateID] = append(f.links[candidateID], jobID)
	return nil
}

func (f *fakeJobRepo) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]models.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.JobPosting, 0)
	for _, jobID := range f.links[candidateID] {
		if job, ok := f.jobs[jobID]; ok {
			out = append(out, job)
		}
	}
	return out, nil
}
