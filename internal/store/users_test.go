package store

import (
	"context"
	"testing"

	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("registers a new username", func(t *testing.T) {
		user, err := s.CreateUser(ctx, "alice", "pw")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		_, err := s.CreateUser(ctx, "alice", "other")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("usernames are case-sensitive", func(t *testing.T) {
		_, err := s.CreateUser(ctx, "Alice", "pw")
		assert.NoError(t, err)
	})

	t.Run("requires username and password", func(t *testing.T) {
		_, err := s.CreateUser(ctx, "  ", "pw")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = s.CreateUser(ctx, "bob", "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "password", verr.Field)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := newTestUser(t, s, "alice")

	user, err := s.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = s.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := newTestUser(t, s, "alice")

	user, err := s.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = s.GetUser(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	thread, err := s.CreateThread(ctx, alice, types.ThreadInput{Code: "310"})
	require.NoError(t, err)
	project, err := s.CreateProject(ctx, alice, types.ProjectInput{Name: "Sampler"})
	require.NoError(t, err)
	_, err = s.Assign(ctx, alice, project.ID, thread.ID)
	require.NoError(t, err)

	_, err = s.CreateThread(ctx, bob, types.ThreadInput{Code: "321"})
	require.NoError(t, err)

	deleted, err := s.DeleteUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, s.DB().Table("threads").Where("user_id = ?", alice).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, s.DB().Table("projects").Where("user_id = ?", alice).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, s.DB().Table("project_threads").Count(&count).Error)
	assert.Zero(t, count)

	threads, err := s.ListThreads(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, threads, 1)

	deleted, err = s.DeleteUser(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
