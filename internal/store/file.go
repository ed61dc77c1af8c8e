package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// FileStore keeps everything in one JSON document on disk
type FileStore struct {
	path   string
	userID string
	mu     sync.Mutex
}

type fileDocument struct {
	Version     int                      `json:"version"`
	Progress    *domain.ProgressState    `json:"progress,omitempty"`
	Simulations []domain.SavedSimulation `json:"simulations,omitempty"`
}

const fileVersion = 1

// NewFileStore creates a store at path. The file is created on first save.
func NewFileStore(path, userID string) *FileStore {
	return &FileStore{path: path, userID: userID}
}

// Path returns the document location
func (s *FileStore) Path() string { return s.path }

// Load returns the saved progress, or a fresh state when nothing is saved
func (s *FileStore) Load(ctx context.Context) (*domain.ProgressState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	if doc.Progress == nil {
		return freshState(s.userID), nil
	}
	doc.Progress.EnsureMaps()
	return doc.Progress, nil
}

// Save replaces the stored progress
func (s *FileStore) Save(ctx context.Context, state *domain.ProgressState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Progress = state
	return s.write(doc)
}

// SaveSimulation appends a saved simulation
func (s *FileStore) SaveSimulation(ctx context.Context, rec domain.SavedSimulation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Simulations = append(doc.Simulations, rec)
	return s.write(doc)
}

// ListSimulations returns saved simulations, newest first
func (s *FileStore) ListSimulations(ctx context.Context) ([]domain.SavedSimulation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := append([]domain.SavedSimulation(nil), doc.Simulations...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// Close is a no-op
func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (*fileDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &fileDocument{Version: fileVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return &doc, nil
}

// write replaces the document atomically through a temp file
func (s *FileStore) write(doc *fileDocument) error {
	doc.Version = fileVersion
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".ltcsim-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
