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

type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.CandidateFilter) ([]models.Candidate, error)
}

type candidateRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCandidateRepository(db *gorm.DB, timeout time.Duration) CandidateRepository {
	return &candidateRepository{db: db, timeout: timeout}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return storeErr("create candidate", err)
	}
	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", id, models.ErrCandidateNotFound)
		}
		return nil, storeErr("find candidate", err)
	}
	return &candidate, nil
}

// Update implements CandidateRepository.
func (r *candidateRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&models.Candidate{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return storeErr("update candidate", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate %s: %w", id, models.ErrCandidateNotFound)
	}
	return nil
}

// Delete implements CandidateRepository.
func (r *candidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Candidate{})
	if result.Error != nil {
		return storeErr("delete candidate", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate %s: %w", id, models.ErrCandidateNotFound)
	}
	return nil
}

// List implements CandidateRepository.
func (r *candidateRepository) List(ctx context.Context, filter models.CandidateFilter) ([]models.Candidate, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Candidate{})
	if filter.Status != "" {
		query = query.Where("current_status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR position ILIKE ?", kw, kw, kw, kw)
	}
	if filter.JobID != uuid.Nil {
		query = query.Where("id IN (?)",
			r.db.Model(&models.CandidateJob{}).Select("candidate_id").Where("job_id = ?", filter.JobID))
	}

	var candidates []models.Candidate
	if err := query.Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, storeErr("list candidates", err)
	}
	return candidates, nil
}
