package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stitchbook-dev/stitchbook/db"
	"github.com/stitchbook-dev/stitchbook/internal/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestStore opens a private in-memory SQLite database with the schema
// migrated.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	gormDB, err := db.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gormDB) })

	require.NoError(t, db.MigrateDatabase(gormDB))

	return New(gormDB, WithHashCost(bcrypt.MinCost))
}

func newTestUser(t *testing.T, s *Store, username string) uint {
	t.Helper()

	user, err := s.CreateUser(context.Background(), username, "secret")
	require.NoError(t, err)
	return user.ID
}
