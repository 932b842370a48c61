// Package store is the persistence boundary for datasets and their file metadata.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
	"github.com/Madelsa/Dataset-publishing/internal/status"
)

var (
	ErrDuplicateName = errors.New("a dataset with this name already exists")
	ErrNotFound      = gorm.ErrRecordNotFound
)

// fileColumnsWithoutSamples lets list views preload file metadata without
// dragging the sample rows along.
var fileColumnsWithoutSamples = []string{
	"id", "dataset_id", "original_name", "file_size", "file_type",
	"row_count", "row_count_estimated", "column_names",
	"created_at", "updated_at", "deleted_at",
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a dataset and its file metadata in a single transaction. The
// name collision check is case-insensitive and runs inside the transaction.
func (s *Store) Create(ctx context.Context, ds *entity.Dataset, fm *entity.FileMetadata) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Dataset{}).Where("LOWER(name) = LOWER(?)", ds.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check dataset name: %w", err)
		}
		if count > 0 {
			return ErrDuplicateName
		}
		if err := tx.Create(ds).Error; err != nil {
			return fmt.Errorf("failed to create dataset: %w", err)
		}
		fm.DatasetID = ds.ID
		if err := tx.Create(fm).Error; err != nil {
			return fmt.Errorf("failed to create file metadata: %w", err)
		}
		ds.File = fm
		return nil
	})
}

// GetByID loads a dataset with its file metadata inline. Sample rows are only
// fetched when withSamples is set; list-style callers should skip them.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID, withSamples bool) (*entity.Dataset, error) {
	var ds entity.Dataset
	query := s.db.WithContext(ctx)
	if withSamples {
		query = query.Preload("File")
	} else {
		query = query.Preload("File", func(db *gorm.DB) *gorm.DB {
			return db.Select(fileColumnsWithoutSamples)
		})
	}
	if err := query.Where("id = ?", id).First(&ds).Error; err != nil {
		return nil, err
	}
	return &ds, nil
}

// ListAll returns every dataset, newest first, without sample rows.
func (s *Store) ListAll(ctx context.Context) ([]entity.Dataset, error) {
	var datasets []entity.Dataset
	err := s.db.WithContext(ctx).
		Preload("File", func(db *gorm.DB) *gorm.DB {
			return db.Select(fileColumnsWithoutSamples)
		}).
		Order("created_at DESC").
		Find(&datasets).Error
	if err != nil {
		return nil, err
	}
	return datasets, nil
}

// ExistsByName reports whether a dataset with this name exists, ignoring case.
func (s *Store) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Dataset{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists a mutated dataset record.
func (s *Store) Update(ctx context.Context, ds *entity.Dataset) error {
	return s.db.WithContext(ctx).Save(ds).Error
}

// Delete removes a dataset and its file metadata. The FK carries ON DELETE
// CASCADE; the explicit file delete keeps behavior identical on test databases
// without FK enforcement.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ds entity.Dataset
		if err := tx.Where("id = ?", id).First(&ds).Error; err != nil {
			return err
		}
		if err := tx.Where("dataset_id = ?", id).Delete(&entity.FileMetadata{}).Error; err != nil {
			return fmt.Errorf("failed to delete file metadata: %w", err)
		}
		if err := tx.Delete(&ds).Error; err != nil {
			return fmt.Errorf("failed to delete dataset: %w", err)
		}
		return nil
	})
}

// MigrateLegacyStatuses rewrites legacy status vocabulary values onto the
// canonical four states. Runs once at boot; safe to re-run.
func (s *Store) MigrateLegacyStatuses(ctx context.Context) error {
	for raw, canonical := range status.LegacyVocabulary() {
		err := s.db.WithContext(ctx).Model(&entity.Dataset{}).
			Where("status = ?", raw).
			Update("status", string(canonical)).Error
		if err != nil {
			return fmt.Errorf("failed to migrate legacy status %q: %w", raw, err)
		}
	}
	return nil
}
