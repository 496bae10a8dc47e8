package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"tracker/internal/models"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	// Configure TLS if enabled
	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test the connection
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	// This method is kept for interface compatibility
	return nil
}

// LoadMaterials reads the queue and the processed list ordered by position.
func (db *ClickHouseDB) LoadMaterials(ctx context.Context) (models.MaterialsSnapshot, error) {
	var snap models.MaterialsSnapshot
	var err error

	if snap.Queue, err = db.loadMaterialList(ctx, "queue"); err != nil {
		return models.MaterialsSnapshot{}, err
	}
	if snap.Processed, err = db.loadMaterialList(ctx, "processed"); err != nil {
		return models.MaterialsSnapshot{}, err
	}
	return snap, nil
}

func (db *ClickHouseDB) loadMaterialList(ctx context.Context, state string) ([]models.Material, error) {
	rows, err := db.conn.Query(ctx,
		`SELECT id, title, author, pages, start_date, end_date FROM materials WHERE state = ? ORDER BY position`,
		state)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s materials: %w", state, err)
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		var (
			id, pages        int64
			title, author    string
			startRaw, endRaw string
		)
		if err := rows.Scan(&id, &title, &author, &pages, &startRaw, &endRaw); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}

		m := models.Material{ID: int(id), Title: title, Author: author, Pages: int(pages)}
		if m.StartDate, err = parseOptionalDate(startRaw); err != nil {
			return nil, err
		}
		if m.EndDate, err = parseOptionalDate(endRaw); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, nil
}

// SaveMaterials replaces the queue and the processed list.
func (db *ClickHouseDB) SaveMaterials(ctx context.Context, snap models.MaterialsSnapshot) error {
	if err := db.conn.Exec(ctx, `TRUNCATE TABLE materials`); err != nil {
		return fmt.Errorf("failed to clear materials: %w", err)
	}
	if err := db.insertMaterials(ctx, "queue", snap.Queue); err != nil {
		return err
	}
	return db.insertMaterials(ctx, "processed", snap.Processed)
}

func (db *ClickHouseDB) insertMaterials(ctx context.Context, state string, materials []models.Material) error {
	for i, m := range materials {
		err := db.conn.Exec(ctx,
			`INSERT INTO materials (id, title, author, pages, start_date, end_date, state, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			int64(m.ID), m.Title, m.Author, int64(m.Pages),
			formatOptionalDate(m.StartDate), formatOptionalDate(m.EndDate),
			state, uint32(i))
		if err != nil {
			return fmt.Errorf("failed to insert material %d: %w", m.ID, err)
		}
	}
	return nil
}

// LoadLog reads the reading log.
func (db *ClickHouseDB) LoadLog(ctx context.Context) (models.LogSnapshot, error) {
	rows, err := db.conn.Query(ctx, `SELECT date, pages FROM reading_log`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading log: %w", err)
	}
	defer rows.Close()

	snap := make(models.LogSnapshot)
	for rows.Next() {
		var raw string
		var pages int64
		if err := rows.Scan(&raw, &pages); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		date, err := models.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log date: %w", err)
		}
		snap[date] = int(pages)
	}
	return snap, nil
}

// SaveLog replaces the reading log.
func (db *ClickHouseDB) SaveLog(ctx context.Context, snap models.LogSnapshot) error {
	if err := db.conn.Exec(ctx, `TRUNCATE TABLE reading_log`); err != nil {
		return fmt.Errorf("failed to clear reading log: %w", err)
	}
	for date, pages := range snap {
		err := db.conn.Exec(ctx, `INSERT INTO reading_log (date, pages) VALUES (?, ?)`,
			date.String(), int64(pages))
		if err != nil {
			return fmt.Errorf("failed to insert log entry %s: %w", date, err)
		}
	}
	return nil
}

// LoadNotes reads the notes ordered by id.
func (db *ClickHouseDB) LoadNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := db.conn.Query(ctx,
		`SELECT id, material_id, content, chapter, page, date FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var (
			id, materialID, chapter, page int64
			content, raw                  string
		)
		if err := rows.Scan(&id, &materialID, &content, &chapter, &page, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		date, err := models.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse note date: %w", err)
		}
		notes = append(notes, models.Note{
			ID:         int(id),
			MaterialID: int(materialID),
			Content:    content,
			Chapter:    int(chapter),
			Page:       int(page),
			Date:       date,
		})
	}
	return notes, nil
}

// SaveNotes replaces the notes.
func (db *ClickHouseDB) SaveNotes(ctx context.Context, notes []models.Note) error {
	if err := db.conn.Exec(ctx, `TRUNCATE TABLE notes`); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	for _, n := range notes {
		err := db.conn.Exec(ctx,
			`INSERT INTO notes (id, material_id, content, chapter, page, date) VALUES (?, ?, ?, ?, ?, ?)`,
			int64(n.ID), int64(n.MaterialID), n.Content, int64(n.Chapter), int64(n.Page), n.Date.String())
		if err != nil {
			return fmt.Errorf("failed to insert note %d: %w", n.ID, err)
		}
	}
	return nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

func parseOptionalDate(raw string) (*models.Date, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse material date: %w", err)
	}
	return &date, nil
}

func formatOptionalDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
