package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stitchbook-dev/stitchbook/internal/models"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser registers a new username. Usernames are case-sensitive.
func (s *Store) CreateUser(ctx context.Context, username, password string) (types.UserResponse, error) {
	if strings.TrimSpace(username) == "" {
		return types.UserResponse{}, &ValidationError{Field: "username"}
	}
	if err := required("password", password); err != nil {
		return types.UserResponse{}, err
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return types.UserResponse{}, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return types.UserResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return types.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return types.UserResponse{}, ErrConflict
		}
		return types.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return types.UserResponse{ID: user.ID, Username: user.Username}, nil
}

// Authenticate checks a username/password pair.
func (s *Store) Authenticate(ctx context.Context, username, password string) (types.UserResponse, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.UserResponse{}, ErrInvalidCredentials
		}
		return types.UserResponse{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.UserResponse{}, ErrInvalidCredentials
	}

	return types.UserResponse{ID: user.ID, Username: user.Username}, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (types.UserResponse, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.UserResponse{}, ErrNotFound
		}
		return types.UserResponse{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	return types.UserResponse{ID: user.ID, Username: user.Username}, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (types.UserResponse, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.UserResponse{}, ErrNotFound
		}
		return types.UserResponse{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	return types.UserResponse{ID: user.ID, Username: user.Username}, nil
}

// DeleteUser removes a user by username. Threads, projects and their
// assignments go with it through the foreign key cascades.
func (s *Store) DeleteUser(ctx context.Context, username string) (int64, error) {
	result := s.db.WithContext(ctx).Where("username = ?", username).Delete(&models.User{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete user: %w", result.Error)
	}
	return result.RowsAffected, nil
}
