package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON document per key inside a directory.
type FileStore struct {
	directory string
}

func NewFileStore(directory string) (*FileStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
	}
	return &FileStore{directory: directory}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.directory, key+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	value, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("os.ReadFile(%s) > %w", s.path(key), err)
	}
	return value, true, nil
}

// Set replaces the document through a temp file and a rename, so readers never see a partial write.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.directory, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", s.directory, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s > %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s > %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", s.path(key), err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
