package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recruitops/pipeline-api/internal/models"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.JobPosting) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error)
	List(ctx context.Context) ([]models.JobPosting, error)
	Link(ctx context.Context, candidateID, jobID uuid.UUID) error
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.JobPosting, error)
}

type jobRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewJobRepository(db *gorm.DB, timeout time.Duration) JobRepository {
	return &jobRepository{db: db, timeout: timeout}
}

// Create implements JobRepository.
func (r *jobRepository) Create(ctx context.Context, job *models.JobPosting) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return storeErr("create job posting", err)
	}
	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var job models.JobPosting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job posting %s: %w", id, models.ErrJobNotFound)
		}
		return nil, storeErr("find job posting", err)
	}
	return &job, nil
}

// List implements JobRepository.
func (r *jobRepository) List(ctx context.Context) ([]models.JobPosting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var jobs []models.JobPosting
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, storeErr("list job postings", err)
	}
	return jobs, nil
}

// Link implements JobRepository. Linking the same pair twice is a no-op.
func (r *jobRepository) Link(ctx context.Context, candidateID, jobID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var existing models.CandidateJob
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeErr("find candidate job link", err)
	}

	link := &models.CandidateJob{ID: uuid.New(), CandidateID: candidateID, JobID: jobID}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return storeErr("link candidate to job", err)
	}
	return nil
}

// FindByCandidate implements JobRepository.
func (r *jobRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.JobPosting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var jobs []models.JobPosting
	err := r.db.WithContext(ctx).
		Joins("JOIN candidate_jobs ON candidate_jobs.job_id = job_postings.id").
		Where("candidate_jobs.candidate_id = ?", candidateID).
		Order("candidate_jobs.created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, storeErr("list linked job postings", err)
	}
	return jobs, nil
}
