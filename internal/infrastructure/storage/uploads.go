package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadStore keeps uploaded documents on disk between receiving a
// request and sending the document off for extraction. Files are
// short-lived and removed once processing finishes.
type UploadStore interface {
	Save(name string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string) error
	Clear() (int, error)
}

// LocalUploadStore stores uploads under a single directory with
// random file names, keeping only the original extension.
type LocalUploadStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalUploadStore creates the upload directory if needed.
func NewLocalUploadStore(dir string, logger *zap.Logger) (*LocalUploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalUploadStore{dir: dir, logger: logger}, nil
}

// Save writes data to a fresh uuid-named file and returns its path.
func (s *LocalUploadStore) Save(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	path := filepath.Join(s.dir, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path, nil
}

// Read returns the stored file contents.
func (s *LocalUploadStore) Read(path string) ([]byte, error) {
	if !s.owns(path) {
		return nil, fmt.Errorf("path %q is outside the upload directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *LocalUploadStore) Remove(path string) error {
	if !s.owns(path) {
		return fmt.Errorf("path %q is outside the upload directory", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// Clear removes every file in the upload directory and returns how
// many were deleted. Used by the maintenance endpoint to sweep files
// left behind by crashed requests.
func (s *LocalUploadStore) Clear() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list upload directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to remove stale upload", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}

func (s *LocalUploadStore) owns(path string) bool {
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == dir
}
