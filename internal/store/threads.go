package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/stitchbook-dev/stitchbook/internal/models"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 200

func (s *Store) ListThreads(ctx context.Context, userID uint) ([]types.Thread, error) {
	var rows []models.Thread

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	return toThreads(rows), nil
}

func (s *Store) CreateThread(ctx context.Context, userID uint, in types.ThreadInput) (types.Thread, error) {
	if strings.TrimSpace(in.Code) == "" {
		return types.Thread{}, &ValidationError{Field: "code"}
	}

	row := models.Thread{
		UserID: userID,
		Code:   in.Code,
		Name:   in.Name,
		Hex:    in.Hex,
		Owned:  boolToFlag(in.Owned),
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return types.Thread{}, fmt.Errorf("failed to create thread: %w", err)
	}

	return toThread(row), nil
}

// UpdateThread replaces every field of the thread. A write that matches no
// row owned by userID is reported as ErrNotFound.
func (s *Store) UpdateThread(ctx context.Context, userID, id uint, in types.ThreadInput) (types.Thread, error) {
	if strings.TrimSpace(in.Code) == "" {
		return types.Thread{}, &ValidationError{Field: "code"}
	}

	result := s.db.WithContext(ctx).
		Model(&models.Thread{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"code":  in.Code,
			"name":  in.Name,
			"hex":   in.Hex,
			"owned": boolToFlag(in.Owned),
		})
	if result.Error != nil {
		return types.Thread{}, fmt.Errorf("failed to update thread: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return types.Thread{}, ErrNotFound
	}

	return types.Thread{
		ID:    id,
		Code:  in.Code,
		Name:  in.Name,
		Hex:   in.Hex,
		Owned: in.Owned,
	}, nil
}

// DeleteThread is idempotent: a missing or foreign id deletes nothing.
func (s *Store) DeleteThread(ctx context.Context, userID, id uint) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Thread{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete thread: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ImportThreads inserts every record with a non-empty code as a new thread.
// Existing threads are never merged or touched.
func (s *Store) ImportThreads(ctx context.Context, userID uint, records []types.ThreadInput) (int, error) {
	rows := make([]models.Thread, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Code) == "" {
			continue
		}
		rows = append(rows, models.Thread{
			UserID: userID,
			Code:   rec.Code,
			Name:   rec.Name,
			Hex:    rec.Hex,
			Owned:  boolToFlag(rec.Owned),
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).CreateInBatches(&rows, importBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import threads: %w", err)
	}

	return len(rows), nil
}
