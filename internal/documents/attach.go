package documents

import (
	"context"
	"io"
	"time"
)

// ProjectStore is the slice of the project repository attachments need.
type ProjectStore interface {
	ProjectExists(ctx context.Context, userID, id uint) error
	AttachDocument(ctx context.Context, userID, id uint, filename string) error
	DocumentFilename(ctx context.Context, id uint) (string, error)
}

// Attacher stores project pattern documents and records them on the project.
type Attacher struct {
	projects ProjectStore
	storage  Storage
	now      func() time.Time
}

func NewAttacher(projects ProjectStore, storage Storage) *Attacher {
	return &Attacher{
		projects: projects,
		storage:  storage,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for storage names.
func (a *Attacher) WithClock(now func() time.Time) *Attacher {
	a.now = now
	return a
}

// Attach checks ownership, writes the document and records its name. If the
// project disappears before the name is recorded, the written file is removed.
func (a *Attacher) Attach(ctx context.Context, userID, projectID uint, original string, r io.Reader) (string, error) {
	if err := a.projects.ProjectExists(ctx, userID, projectID); err != nil {
		return "", err
	}

	name := StorageName(projectID, a.now(), original)

	if _, err := a.storage.Save(name, r); err != nil {
		return "", err
	}

	if err := a.projects.AttachDocument(ctx, userID, projectID, name); err != nil {
		_ = a.storage.Remove(name)
		return "", err
	}

	return name, nil
}

// Open returns the document recorded on a project, regardless of owner.
func (a *Attacher) Open(ctx context.Context, projectID uint) (string, Object, error) {
	name, err := a.projects.DocumentFilename(ctx, projectID)
	if err != nil {
		return "", nil, err
	}

	obj, err := a.storage.Open(name)
	if err != nil {
		return "", nil, err
	}

	return name, obj, nil
}
