package datastore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/color-game/palettetool/models"
)

type PaletteRepository interface {
	Create(palette models.StoredPalette) (models.StoredPalette, error)
	Get(id string) (models.StoredPalette, error)
	GetByHash(contentHash string) (models.StoredPalette, error)
	GetAll() ([]models.StoredPaletteSummary, error)
	Delete(id string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type NoRowsError struct {
	NoRows bool
	Err    error
}

func (nr NoRowsError) Error() string {
	return fmt.Sprintf("%v: no rows returned for scan: %v", nr.NoRows, nr.Err)
}

type PaletteDatabase struct {
	database *sql.DB
}

func NewPaletteDatabase(db *sql.DB) (PaletteDatabase, error) {
	var paletteDB PaletteDatabase
	paletteDB.database = db
	return paletteDB, nil
}

// Create inserts a new palette document
func (pdb PaletteDatabase) Create(palette models.StoredPalette) (models.StoredPalette, error) {
	db := pdb.database

	document, err := json.Marshal(palette.Document)
	if err != nil {
		return models.StoredPalette{}, fmt.Errorf("failed to encode palette document: %v", err)
	}

	sqlStatement := `
		INSERT INTO palette_documents (id, title, content_hash, color_count, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = db.Exec(
		sqlStatement,
		palette.ID,
		palette.Title,
		palette.ContentHash,
		palette.ColorCount,
		string(document),
		palette.CreatedAt.Unix(),
	)
	if err != nil {
		return models.StoredPalette{}, fmt.Errorf("failed to create palette: %v", err)
	}

	return palette, nil
}

// Get retrieves a palette document by id
func (pdb PaletteDatabase) Get(id string) (models.StoredPalette, error) {
	sqlStatement := `
		SELECT id, title, content_hash, color_count, document, created_at
		FROM palette_documents
		WHERE id = $1`

	return pdb.scanOne(pdb.database.QueryRow(sqlStatement, id))
}

// GetByHash retrieves a palette document by its content hash
func (pdb PaletteDatabase) GetByHash(contentHash string) (models.StoredPalette, error) {
	sqlStatement := `
		SELECT id, title, content_hash, color_count, document, created_at
		FROM palette_documents
		WHERE content_hash = $1`

	return pdb.scanOne(pdb.database.QueryRow(sqlStatement, contentHash))
}

func (pdb PaletteDatabase) scanOne(row *sql.Row) (models.StoredPalette, error) {
	var palette models.StoredPalette
	var document string
	var createdAt int64

	err := row.Scan(
		&palette.ID,
		&palette.Title,
		&palette.ContentHash,
		&palette.ColorCount,
		&document,
		&createdAt,
	)

	switch err {
	case sql.ErrNoRows:
		return models.StoredPalette{}, NoRowsError{true, err}
	case nil:
	default:
		return models.StoredPalette{}, err
	}

	doc, err := models.ParseDocument([]byte(document))
	if err != nil {
		return models.StoredPalette{}, fmt.Errorf("stored palette %s is corrupt: %w", palette.ID, err)
	}
	palette.Document = doc
	palette.CreatedAt = time.Unix(createdAt, 0).UTC()

	return palette, nil
}

// GetAll lists every stored palette, newest first
func (pdb PaletteDatabase) GetAll() ([]models.StoredPaletteSummary, error) {
	db := pdb.database

	sqlStatement := `
		SELECT id, title, content_hash, color_count, created_at
		FROM palette_documents
		ORDER BY created_at DESC, id`

	rows, err := db.Query(sqlStatement)
	if err != nil {
		return []models.StoredPaletteSummary{}, err
	}
	defer rows.Close()

	summaries := []models.StoredPaletteSummary{}
	for rows.Next() {
		var s models.StoredPaletteSummary
		var createdAt int64
		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.ContentHash,
			&s.ColorCount,
			&createdAt,
		)
		if err != nil {
			return []models.StoredPaletteSummary{}, err
		}
		s.CreatedAt = time.Unix(createdAt, 0).UTC()
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return []models.StoredPaletteSummary{}, err
	}

	return summaries, nil
}

// Delete removes a palette document by id
func (pdb PaletteDatabase) Delete(id string) error {
	db := pdb.database

	sqlStatement := `DELETE FROM palette_documents WHERE id = $1`
	result, err := db.Exec(sqlStatement, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NoRowsError{true, sql.ErrNoRows}
	}
	return nil
}

// DeleteOlderThan removes palettes created before cutoff and reports how many went
func (pdb PaletteDatabase) DeleteOlderThan(cutoff time.Time) (int64, error) {
	db := pdb.database

	sqlStatement := `DELETE FROM palette_documents WHERE created_at < $1`
	result, err := db.Exec(sqlStatement, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune palettes: %v", err)
	}
	return result.RowsAffected()
}
