package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/stitchbook-dev/stitchbook/internal/models"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) threadOwned(ctx context.Context, userID, id uint) error {
	var row models.Thread

	if err := s.db.WithContext(ctx).Select("id").Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to retrieve thread: %w", err)
	}

	return nil
}

// Assign adds a thread to a project's palette. Both must belong to userID.
// Assigning an existing pair succeeds without writing anything.
func (s *Store) Assign(ctx context.Context, userID, projectID, threadID uint) (types.Assignment, error) {
	if err := s.ProjectExists(ctx, userID, projectID); err != nil {
		return types.Assignment{}, err
	}
	if err := s.threadOwned(ctx, userID, threadID); err != nil {
		return types.Assignment{}, err
	}

	row := models.ProjectThread{ProjectID: projectID, ThreadID: threadID}

	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return types.Assignment{}, fmt.Errorf("failed to assign thread: %w", err)
	}

	return types.Assignment{ProjectID: projectID, ThreadID: threadID}, nil
}

// Unassign removes a thread from a project's palette and reports how many
// rows went away (0 or 1).
func (s *Store) Unassign(ctx context.Context, userID, projectID, threadID uint) (int64, error) {
	if err := s.ProjectExists(ctx, userID, projectID); err != nil {
		return 0, err
	}

	result := s.db.WithContext(ctx).
		Where("project_id = ? AND thread_id = ?", projectID, threadID).
		Delete(&models.ProjectThread{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to unassign thread: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// ThreadsFor resolves a project's palette through the assignment table.
func (s *Store) ThreadsFor(ctx context.Context, projectID uint) ([]types.Thread, error) {
	var rows []models.Thread

	err := s.db.WithContext(ctx).
		Model(&models.Thread{}).
		Select("threads.*").
		Joins("JOIN project_threads ON project_threads.thread_id = threads.id").
		Where("project_threads.project_id = ?", projectID).
		Order("threads.id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project threads: %w", err)
	}

	return toThreads(rows), nil
}
