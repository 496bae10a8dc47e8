package stubs

import (
	"context"
	"sync"

	"tracker/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for
// testing and for running without a persistent backend.
type MockDB struct {
	mu        sync.RWMutex
	materials models.MaterialsSnapshot
	log       models.LogSnapshot
	notes     []models.Note
}

// NewMockDB creates a new empty mock store.
func NewMockDB() *MockDB {
	return &MockDB{
		log: make(models.LogSnapshot),
	}
}

// Initialize does nothing for the mock store.
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// LoadMaterials returns a copy of the stored materials snapshot.
func (m *MockDB) LoadMaterials(ctx context.Context) (models.MaterialsSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneSnapshot(m.materials), nil
}

// SaveMaterials replaces the stored materials snapshot.
func (m *MockDB) SaveMaterials(ctx context.Context, snap models.MaterialsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.materials = cloneSnapshot(snap)
	return nil
}

// LoadLog returns a copy of the stored reading log.
func (m *MockDB) LoadLog(ctx context.Context) (models.LogSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	log := make(models.LogSnapshot, len(m.log))
	for date, pages := range m.log {
		log[date] = pages
	}
	return log, nil
}

// SaveLog replaces the stored reading log.
func (m *MockDB) SaveLog(ctx context.Context, snap models.LogSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := make(models.LogSnapshot, len(snap))
	for date, pages := range snap {
		log[date] = pages
	}
	m.log = log
	return nil
}

// LoadNotes returns a copy of the stored notes.
func (m *MockDB) LoadNotes(ctx context.Context) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]models.Note(nil), m.notes...), nil
}

// SaveNotes replaces the stored notes.
func (m *MockDB) SaveNotes(ctx context.Context, notes []models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notes = append([]models.Note(nil), notes...)
	return nil
}

// Close does nothing for the mock store.
func (m *MockDB) Close() error {
	return nil
}

func cloneSnapshot(snap models.MaterialsSnapshot) models.MaterialsSnapshot {
	out := models.MaterialsSnapshot{
		Queue:     make([]models.Material, len(snap.Queue)),
		Processed: make([]models.Material, len(snap.Processed)),
	}
	for i, m := range snap.Queue {
		out.Queue[i] = m.Clone()
	}
	for i, m := range snap.Processed {
		out.Processed[i] = m.Clone()
	}
	return out
}
