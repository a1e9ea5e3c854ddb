package store

import (
	"context"
	"testing"

	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")

	created, err := s.CreateProject(ctx, alice, types.ProjectInput{Name: "Sampler", Description: "Alphabet"})
	require.NoError(t, err)
	assert.Nil(t, created.PDFFilename)

	projects, err := s.ListProjects(ctx, alice)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, created, projects[0])

	updated, err := s.UpdateProject(ctx, alice, created.ID, types.ProjectInput{Name: "Big sampler"})
	require.NoError(t, err)
	assert.Equal(t, "Big sampler", updated.Name)
	assert.Empty(t, updated.Description)

	detail, err := s.GetProject(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, detail.Project)
	assert.NotNil(t, detail.Threads)
	assert.Empty(t, detail.Threads)

	deleted, err := s.DeleteProject(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = s.GetProject(ctx, alice, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err = s.DeleteProject(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestProjectValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")

	_, err := s.CreateProject(ctx, alice, types.ProjectInput{Description: "no name"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestProjectsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	project, err := s.CreateProject(ctx, alice, types.ProjectInput{Name: "Sampler"})
	require.NoError(t, err)

	_, err = s.GetProject(ctx, bob, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateProject(ctx, bob, project.ID, types.ProjectInput{Name: "Mine now"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.AttachDocument(ctx, bob, project.ID, "x.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := s.DeleteProject(ctx, bob, project.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	projects, err := s.ListProjects(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestDocumentFilename(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice")

	project, err := s.CreateProject(ctx, alice, types.ProjectInput{Name: "Sampler"})
	require.NoError(t, err)

	_, err = s.DocumentFilename(ctx, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.AttachDocument(ctx, alice, project.ID, "1_1700000000000_chart.pdf"))

	name, err := s.DocumentFilename(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "1_1700000000000_chart.pdf", name)

	detail, err := s.GetProject(ctx, alice, project.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.PDFFilename)
	assert.Equal(t, name, *detail.PDFFilename)

	_, err = s.DocumentFilename(ctx, project.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}
