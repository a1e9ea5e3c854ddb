package documents

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// ErrNotFound is returned when a stored document is missing.
var ErrNotFound = errors.New("document not found")

// Storage persists uploaded documents under server-generated names.
type Storage interface {
	Save(name string, r io.Reader) (int64, error)
	Open(name string) (Object, error)
	Remove(name string) error
}

// Object is an opened stored document.
type Object interface {
	io.ReadCloser
	Size() int64
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9.\-_]`)

// Sanitize replaces every character outside [A-Za-z0-9.-_] with an
// underscore.
func Sanitize(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// StorageName builds {projectID}_{unixMillis}_{sanitized original name}.
func StorageName(projectID uint, at time.Time, original string) string {
	return fmt.Sprintf("%d_%d_%s", projectID, at.UnixMilli(), Sanitize(original))
}

// FileStorage keeps documents as plain files in one directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

func (s *FileStorage) Save(name string, r io.Reader) (int64, error) {
	path, err := s.path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create document: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write document: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to write document: %w", err)
	}

	return n, nil
}

type fileObject struct {
	*os.File
	size int64
}

func (o fileObject) Size() int64 { return o.size }

func (s *FileStorage) Open(name string) (Object, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, ErrNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	return fileObject{File: f, size: info.Size()}, nil
}

func (s *FileStorage) Remove(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}
