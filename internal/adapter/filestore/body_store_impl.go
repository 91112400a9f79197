package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BodyStoreImpl keeps the body store in a flat UTF-8 text file.
type BodyStoreImpl struct {
	path string
}

// NewBodyStore creates a store backed by the file at path. The file is
// created lazily on the first write.
func NewBodyStore(path string) *BodyStoreImpl {
	return &BodyStoreImpl{path: path}
}

// IsEmpty reports whether the file is absent or zero-length.
func (s *BodyStoreImpl) IsEmpty(_ context.Context) (bool, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat body store: %w", err)
	}
	return info.Size() == 0, nil
}

// Append writes content to the end of the file.
func (s *BodyStoreImpl) Append(_ context.Context, content string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open body store: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("append body store: %w", err)
	}
	return f.Close()
}

// ReadAll returns the file content. An absent file reads as empty.
func (s *BodyStoreImpl) ReadAll(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read body store: %w", err)
	}
	return string(data), nil
}

// Truncate empties the file, creating it if needed.
func (s *BodyStoreImpl) Truncate(_ context.Context) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, nil, 0o644); err != nil {
		return fmt.Errorf("truncate body store: %w", err)
	}
	return nil
}

func (s *BodyStoreImpl) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create body store dir: %w", err)
	}
	return nil
}
