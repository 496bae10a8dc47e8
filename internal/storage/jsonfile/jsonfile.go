package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"tracker/internal/models"
)

const (
	materialsFile = "materials.json"
	logFile       = "log.json"
	notesFile     = "notes.json"
)

// Store persists tracker snapshots as pretty-printed JSON files in a
// single directory. A missing or empty file reads as an empty snapshot.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a file store rooted at dir.
func New(dir string, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Initialize creates the data directory.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", s.dir, err)
	}
	s.logger.Info("File store ready", zap.String("dir", s.dir))
	return nil
}

// LoadMaterials reads the materials snapshot.
func (s *Store) LoadMaterials(ctx context.Context) (models.MaterialsSnapshot, error) {
	var snap models.MaterialsSnapshot
	if err := s.read(materialsFile, &snap); err != nil {
		return models.MaterialsSnapshot{}, err
	}
	return snap, nil
}

// SaveMaterials writes the materials snapshot.
func (s *Store) SaveMaterials(ctx context.Context, snap models.MaterialsSnapshot) error {
	return s.write(materialsFile, snap)
}

// LoadLog reads the reading log snapshot.
func (s *Store) LoadLog(ctx context.Context) (models.LogSnapshot, error) {
	snap := make(models.LogSnapshot)
	if err := s.read(logFile, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// SaveLog writes the reading log snapshot.
func (s *Store) SaveLog(ctx context.Context, snap models.LogSnapshot) error {
	return s.write(logFile, snap)
}

// LoadNotes reads the notes list.
func (s *Store) LoadNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := s.read(notesFile, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNotes writes the notes list.
func (s *Store) SaveNotes(ctx context.Context, notes []models.Note) error {
	return s.write(notesFile, notes)
}

// Close does nothing for the file store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) read(name string, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// write replaces the file through a rename so a crash mid-write cannot
// leave a truncated snapshot behind.
func (s *Store) write(name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
