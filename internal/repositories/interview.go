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

type InterviewRepository interface {
	Create(ctx context.Context, record *models.InterviewRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.InterviewRecord, error)
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.InterviewRecord, error)
	MaxRound(ctx context.Context, candidateID uuid.UUID) (int, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type interviewRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewInterviewRepository(db *gorm.DB, timeout time.Duration) InterviewRepository {
	return &interviewRepository{db: db, timeout: timeout}
}

// Create implements InterviewRepository.
func (r *interviewRepository) Create(ctx context.Context, record *models.InterviewRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return storeErr("create interview record", err)
	}
	return nil
}

// FindByID implements InterviewRepository.
func (r *interviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.InterviewRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var record models.InterviewRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview %s: %w", id, models.ErrInterviewNotFound)
		}
		return nil, storeErr("find interview record", err)
	}
	return &record, nil
}

// FindByCandidate implements InterviewRepository.
func (r *interviewRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.InterviewRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var records []models.InterviewRecord
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("round ASC, created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, storeErr("list interview records", err)
	}
	return records, nil
}

// MaxRound implements InterviewRepository. Returns 0 when the candidate has
// no interview history.
func (r *interviewRepository) MaxRound(ctx context.Context, candidateID uuid.UUID) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var max int
	err := r.db.WithContext(ctx).
		Model(&models.InterviewRecord{}).
		Where("candidate_id = ?", candidateID).
		Select("COALESCE(MAX(round), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, storeErr("max interview round", err)
	}
	return max, nil
}

// Update implements InterviewRepository.
func (r *interviewRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&models.InterviewRecord{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return storeErr("update interview record", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("interview %s: %w", id, models.ErrInterviewNotFound)
	}
	return nil
}

// Delete implements InterviewRepository.
func (r *interviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InterviewRecord{})
	if result.Error != nil {
		return storeErr("delete interview record", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("interview %s: %w", id, models.ErrInterviewNotFound)
	}
	return nil
}
