package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tracker/internal/models"
)

// DB implements the Storage interface on a local SQLite database. Saves
// replace the whole snapshot inside one transaction, so readers never see
// a half-written state.
type DB struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens (or creates) the database at path.
func New(path string, logger *zap.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("SQLite connection established", zap.String("path", path))
	return &DB{db: db, logger: logger}, nil
}

// Initialize creates the schema.
func (d *DB) Initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS materials (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		pages INTEGER NOT NULL,
		start_date TEXT,
		end_date TEXT,
		state TEXT NOT NULL CHECK (state IN ('queue', 'processed')),
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reading_log (
		date TEXT PRIMARY KEY,
		pages INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY,
		material_id INTEGER NOT NULL,
		content TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		page INTEGER NOT NULL,
		date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_materials_state ON materials(state, position);
	CREATE INDEX IF NOT EXISTS idx_notes_material ON notes(material_id);
	`

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// LoadMaterials reads both material lists ordered by position.
func (d *DB) LoadMaterials(ctx context.Context) (models.MaterialsSnapshot, error) {
	var snap models.MaterialsSnapshot
	var err error

	if snap.Queue, err = d.loadMaterialList(ctx, "queue"); err != nil {
		return models.MaterialsSnapshot{}, err
	}
	if snap.Processed, err = d.loadMaterialList(ctx, "processed"); err != nil {
		return models.MaterialsSnapshot{}, err
	}
	return snap, nil
}

func (d *DB) loadMaterialList(ctx context.Context, state string) ([]models.Material, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, title, author, pages, start_date, end_date
		 FROM materials WHERE state = ? ORDER BY position`, state)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s materials: %w", state, err)
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		var m models.Material
		var start, end sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.Author, &m.Pages, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		if m.StartDate, err = parseOptionalDate(start); err != nil {
			return nil, err
		}
		if m.EndDate, err = parseOptionalDate(end); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate materials: %w", err)
	}
	return materials, nil
}

// SaveMaterials replaces both material lists.
func (d *DB) SaveMaterials(ctx context.Context, snap models.MaterialsSnapshot) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM materials`); err != nil {
			return fmt.Errorf("failed to clear materials: %w", err)
		}
		if err := insertMaterials(ctx, tx, "queue", snap.Queue); err != nil {
			return err
		}
		return insertMaterials(ctx, tx, "processed", snap.Processed)
	})
}

func insertMaterials(ctx context.Context, tx *sql.Tx, state string, materials []models.Material) error {
	for i, m := range materials {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO materials (id, title, author, pages, start_date, end_date, state, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Title, m.Author, m.Pages,
			formatOptionalDate(m.StartDate), formatOptionalDate(m.EndDate), state, i)
		if err != nil {
			return fmt.Errorf("failed to insert material %d: %w", m.ID, err)
		}
	}
	return nil
}

// LoadLog reads the reading log.
func (d *DB) LoadLog(ctx context.Context) (models.LogSnapshot, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT date, pages FROM reading_log`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading log: %w", err)
	}
	defer rows.Close()

	snap := make(models.LogSnapshot)
	for rows.Next() {
		var raw string
		var pages int
		if err := rows.Scan(&raw, &pages); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		date, err := models.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log date: %w", err)
		}
		snap[date] = pages
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reading log: %w", err)
	}
	return snap, nil
}

// SaveLog replaces the reading log.
func (d *DB) SaveLog(ctx context.Context, snap models.LogSnapshot) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reading_log`); err != nil {
			return fmt.Errorf("failed to clear reading log: %w", err)
		}
		for date, pages := range snap {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO reading_log (date, pages) VALUES (?, ?)`,
				date.String(), pages)
			if err != nil {
				return fmt.Errorf("failed to insert log entry %s: %w", date, err)
			}
		}
		return nil
	})
}

// LoadNotes reads the notes ordered by id.
func (d *DB) LoadNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, material_id, content, chapter, page, date FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var raw string
		if err := rows.Scan(&n.ID, &n.MaterialID, &n.Content, &n.Chapter, &n.Page, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if n.Date, err = models.ParseDate(raw); err != nil {
			return nil, fmt.Errorf("failed to parse note date: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

// SaveNotes replaces the notes.
func (d *DB) SaveNotes(ctx context.Context, notes []models.Note) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
			return fmt.Errorf("failed to clear notes: %w", err)
		}
		for _, n := range notes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO notes (id, material_id, content, chapter, page, date)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				n.ID, n.MaterialID, n.Content, n.Chapter, n.Page, n.Date.String())
			if err != nil {
				return fmt.Errorf("failed to insert note %d: %w", n.ID, err)
			}
		}
		return nil
	})
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func parseOptionalDate(s sql.NullString) (*models.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	date, err := models.ParseDate(s.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse material date: %w", err)
	}
	return &date, nil
}

func formatOptionalDate(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
