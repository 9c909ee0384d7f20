package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

const fileExt = ".json"

// FileStore persists every game to its own JSON file in dataDir.
type FileStore struct {
	mu      sync.RWMutex
	dataDir string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{
		dataDir: dataDir,
	}, nil
}

func (s *FileStore) filePath(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid game id %q", id)
	}
	return filepath.Join(s.dataDir, id+fileExt), nil
}

func (s *FileStore) Get(_ context.Context, id string) ([]byte, error) {
	path, err := s.filePath(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		return nil, fmt.Errorf("failed to read game %s: %w", id, err)
	}
	return data, nil
}

func (s *FileStore) Create(_ context.Context, id string, value []byte) error {
	path, err := s.filePath(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrGameExists, id)
	}
	return s.write(path, value)
}

func (s *FileStore) Put(_ context.Context, id string, value []byte) error {
	path, err := s.filePath(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(path, value)
}

// write replaces path atomically so readers never see a partial game.
func (s *FileStore) write(path string, value []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("failed to write game: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace game: %w", err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	ids := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), fileExt))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *FileStore) Close() error {
	return nil
}
