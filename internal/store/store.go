// Package store is the relational storage adapter. Every read and write is
// scoped to the owning user; rows owned by someone else behave exactly like
// rows that do not exist.
package store

import (
	"github.com/stitchbook-dev/stitchbook/internal/models"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Store struct {
	db       *gorm.DB
	hashCost int
}

type Option func(*Store)

// WithHashCost overrides the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Store) {
		s.hashCost = cost
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying handle for migrations and health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func boolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toThread(t models.Thread) types.Thread {
	return types.Thread{
		ID:    t.ID,
		Code:  t.Code,
		Name:  t.Name,
		Hex:   t.Hex,
		Owned: t.Owned != 0,
	}
}

func toThreads(rows []models.Thread) []types.Thread {
	threads := make([]types.Thread, 0, len(rows))
	for _, row := range rows {
		threads = append(threads, toThread(row))
	}
	return threads
}

func toProject(p models.Project) types.Project {
	return types.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PDFFilename: p.PDFFilename,
	}
}
