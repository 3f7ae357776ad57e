package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recruitops/pipeline-api/internal/models"
)

// Sub-record repositories share the same narrow shape: the pipeline only
// creates them, edits them, and reads them back per candidate as inputs to
// the derived flags.

type AssessmentRepository interface {
	Create(ctx context.Context, record *models.AssessmentRecord) error
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.AssessmentRecord, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
}

type BackgroundRepository interface {
	Create(ctx context.Context, record *models.BackgroundRecord) error
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.BackgroundRecord, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
}

type OfferRepository interface {
	Create(ctx context.Context, record *models.OfferRecord) error
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.OfferRecord, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
}

type assessmentRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewAssessmentRepository(db *gorm.DB, timeout time.Duration) AssessmentRepository {
	return &assessmentRepository{db: db, timeout: timeout}
}

func (r *assessmentRepository) Create(ctx context.Context, record *models.AssessmentRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return storeErr("create assessment record", err)
	}
	return nil
}

func (r *assessmentRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.AssessmentRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var records []models.AssessmentRecord
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, storeErr("list assessment records", err)
	}
	return records, nil
}

func (r *assessmentRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&models.AssessmentRecord{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return storeErr("update assessment record", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("assessment record %s: %w", id, models.ErrAssessmentNotFound)
	}
	return nil
}

type backgroundRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewBackgroundRepository(db *gorm.DB, timeout time.Duration) BackgroundRepository {
	return &backgroundRepository{db: db, timeout: timeout}
}

func (r *backgroundRepository) Create(ctx context.Context, record *models.BackgroundRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return storeErr("create background record", err)
	}
	return nil
}

func (r *backgroundRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.BackgroundRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var records []models.BackgroundRecord
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, storeErr("list background records", err)
	}
	return records, nil
}

func (r *backgroundRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&models.BackgroundRecord{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return storeErr("update background record", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("background record %s: %w", id, models.ErrBackgroundNotFound)
	}
	return nil
}

type offerRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewOfferRepository(db *gorm.DB, timeout time.Duration) OfferRepository {
	return &offerRepository{db: db, timeout: timeout}
}

func (r *offerRepository) Create(ctx context.Context, record *models.OfferRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return storeErr("create offer record", err)
	}
	return nil
}

func (r *offerRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.OfferRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var records []models.OfferRecord
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, storeErr("list offer records", err)
	}
	return records, nil
}

func (r *offerRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&models.OfferRecord{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return storeErr("update offer record", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("offer record %s: %w", id, models.ErrOfferNotFound)
	}
	return nil
}
