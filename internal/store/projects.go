package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stitchbook-dev/stitchbook/internal/models"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) ListProjects(ctx context.Context, userID uint) ([]types.Project, error) {
	var rows []models.Project

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]types.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, toProject(row))
	}

	return projects, nil
}

func (s *Store) CreateProject(ctx context.Context, userID uint, in types.ProjectInput) (types.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return types.Project{}, &ValidationError{Field: "name"}
	}

	row := models.Project{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return types.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return toProject(row), nil
}

func (s *Store) findProject(ctx context.Context, userID, id uint) (models.Project, error) {
	var row models.Project

	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, fmt.Errorf("failed to retrieve project: %w", err)
	}

	return row, nil
}

// GetProject returns the project with its assigned threads resolved.
func (s *Store) GetProject(ctx context.Context, userID, id uint) (types.ProjectDetail, error) {
	row, err := s.findProject(ctx, userID, id)
	if err != nil {
		return types.ProjectDetail{}, err
	}

	threads, err := s.ThreadsFor(ctx, row.ID)
	if err != nil {
		return types.ProjectDetail{}, err
	}

	return types.ProjectDetail{
		Project: toProject(row),
		Threads: threads,
	}, nil
}

// ProjectExists returns ErrNotFound unless userID owns the project.
func (s *Store) ProjectExists(ctx context.Context, userID, id uint) error {
	_, err := s.findProject(ctx, userID, id)
	return err
}

func (s *Store) UpdateProject(ctx context.Context, userID, id uint, in types.ProjectInput) (types.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return types.Project{}, &ValidationError{Field: "name"}
	}

	result := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
		})
	if result.Error != nil {
		return types.Project{}, fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return types.Project{}, ErrNotFound
	}

	row, err := s.findProject(ctx, userID, id)
	if err != nil {
		return types.Project{}, err
	}

	return toProject(row), nil
}

// DeleteProject is idempotent and cascades to the project's assignments.
func (s *Store) DeleteProject(ctx context.Context, userID, id uint) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete project: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// AttachDocument records the stored document name on the project. It only
// ever sets the name; nothing clears it.
func (s *Store) AttachDocument(ctx context.Context, userID, id uint, filename string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("pdf_filename", filename)
	if result.Error != nil {
		return fmt.Errorf("failed to attach document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DocumentFilename looks up the stored document of any project. It is not
// scoped to a user because documents are publicly viewable.
func (s *Store) DocumentFilename(ctx context.Context, id uint) (string, error) {
	var row models.Project

	if err := s.db.WithContext(ctx).Select("id", "pdf_filename").Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to retrieve project: %w", err)
	}

	if row.PDFFilename == nil || *row.PDFFilename == "" {
		return "", ErrNotFound
	}

	return *row.PDFFilename, nil
}
