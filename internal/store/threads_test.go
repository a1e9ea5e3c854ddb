package store

import (
	"context"
	"testing"

	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")

	created, err := s.CreateThread(ctx, alice, types.ThreadInput{
		Code:  "310",
		Name:  "Black",
		Hex:   "#000000",
		Owned: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.Owned)

	threads, err := s.ListThreads(ctx, alice)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, created, threads[0])

	updated, err := s.UpdateThread(ctx, alice, created.ID, types.ThreadInput{
		Code: "310",
		Name: "Black",
		Hex:  "#010101",
	})
	require.NoError(t, err)
	assert.False(t, updated.Owned)
	assert.Equal(t, "#010101", updated.Hex)

	threads, err = s.ListThreads(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, updated, threads[0])

	deleted, err := s.DeleteThread(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = s.DeleteThread(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestThreadValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")

	_, err := s.CreateThread(ctx, alice, types.ThreadInput{Code: " ", Name: "Black"})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := s.CreateThread(ctx, alice, types.ThreadInput{Code: "310"})
	require.NoError(t, err)

	_, err = s.UpdateThread(ctx, alice, created.ID, types.ThreadInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestThreadsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	thread, err := s.CreateThread(ctx, alice, types.ThreadInput{Code: "310"})
	require.NoError(t, err)

	threads, err := s.ListThreads(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, threads)

	_, err = s.UpdateThread(ctx, bob, thread.ID, types.ThreadInput{Code: "999"})
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := s.DeleteThread(ctx, bob, thread.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	threads, err = s.ListThreads(ctx, alice)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "310", threads[0].Code)
}

func TestImportThreads(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")

	_, err := s.CreateThread(ctx, alice, types.ThreadInput{Code: "310", Name: "Black"})
	require.NoError(t, err)

	imported, err := s.ImportThreads(ctx, alice, []types.ThreadInput{
		{Code: "310", Name: "Black", Hex: "#000000", Owned: true},
		{Code: "", Name: "Dropped"},
		{Code: "321", Name: "Red", Hex: "#C72B3B"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	threads, err := s.ListThreads(ctx, alice)
	require.NoError(t, err)
	require.Len(t, threads, 3)
	assert.Equal(t, "310", threads[1].Code)
	assert.True(t, threads[1].Owned)
	assert.Equal(t, "321", threads[2].Code)

	imported, err = s.ImportThreads(ctx, alice, nil)
	require.NoError(t, err)
	assert.Zero(t, imported)
}
