package storage

import (
	"context"

	"tracker/internal/models"
)

// Storage defines the interface for persisting tracker state. State is
// loaded whole at startup and written back whole after each mutation.
// A backend with nothing stored returns empty snapshots, not an error.
type Storage interface {
	// Materials snapshot: the queue and the processed list
	LoadMaterials(ctx context.Context) (models.MaterialsSnapshot, error)
	SaveMaterials(ctx context.Context, snap models.MaterialsSnapshot) error

	// Reading log snapshot
	LoadLog(ctx context.Context) (models.LogSnapshot, error)
	SaveLog(ctx context.Context, snap models.LogSnapshot) error

	// Notes in creation order
	LoadNotes(ctx context.Context) ([]models.Note, error)
	SaveNotes(ctx context.Context, notes []models.Note) error

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
