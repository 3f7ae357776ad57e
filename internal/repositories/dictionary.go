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

type DictionaryRepository interface {
	ListByCategory(ctx context.Context, category string) ([]models.DictionaryEntry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DictionaryEntry, error)
	Create(ctx context.Context, entry *models.DictionaryEntry) error
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type dictionaryRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewDictionaryRepository(db *gorm.DB, timeout time.Duration) DictionaryRepository {
	return &dictionaryRepository{db: db, timeout: timeout}
}

// ListByCategory implements DictionaryRepository. Entries come back in
// display order; the first one is the category default.
func (r *dictionaryRepository) ListByCategory(ctx context.Context, category string) ([]models.DictionaryEntry, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var entries []models.DictionaryEntry
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("display_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, storeErr("list dictionary entries", err)
	}
	return entries, nil
}

// FindByID implements DictionaryRepository.
func (r *dictionaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.DictionaryEntry, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var entry models.DictionaryEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dictionary entry %s: %w", id, models.ErrDictionaryEntryNotFound)
		}
		return nil, storeErr("find dictionary entry", err)
	}
	return &entry, nil
}

// Create implements DictionaryRepository.
func (r *dictionaryRepository) Create(ctx context.Context, entry *models.DictionaryEntry) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return storeErr("create dictionary entry", err)
	}
	return nil
}

// Update implements DictionaryRepository.
func (r *dictionaryRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&models.DictionaryEntry{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return storeErr("update dictionary entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("dictionary entry %s: %w", id, models.ErrDictionaryEntryNotFound)
	}
	return nil
}

// Delete implements DictionaryRepository.
func (r *dictionaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DictionaryEntry{})
	if result.Error != nil {
		return storeErr("delete dictionary entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("dictionary entry %s: %w", id, models.ErrDictionaryEntryNotFound)
	}
	return nil
}
