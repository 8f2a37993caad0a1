package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StoredPalette is a palette document persisted by the palette service
type StoredPalette struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	ContentHash string          `json:"content_hash"`
	ColorCount  int             `json:"color_count"`
	Document    PaletteDocument `json:"document"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewStoredPalette wraps doc for storage with a fresh id and its content hash
func NewStoredPalette(doc PaletteDocument, now time.Time) (StoredPalette, error) {
	hash, err := ContentHash(doc)
	if err != nil {
		return StoredPalette{}, err
	}

	sp := StoredPalette{
		ID:          uuid.NewString(),
		ContentHash: hash,
		Document:    doc,
		CreatedAt:   now.UTC().Truncate(time.Second),
	}
	if primary, ok := doc.Primary(); ok {
		sp.Title = primary.Title
	}
	for _, p := range doc.Palettes {
		sp.ColorCount += len(p.Colors)
	}
	return sp, nil
}

// StoredPaletteSummary is the listing form without the document body
type StoredPaletteSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash"`
	ColorCount  int       `json:"color_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary drops the document body
func (sp StoredPalette) Summary() StoredPaletteSummary {
	return StoredPaletteSummary{
		ID:          sp.ID,
		Title:       sp.Title,
		ContentHash: sp.ContentHash,
		ColorCount:  sp.ColorCount,
		CreatedAt:   sp.CreatedAt,
	}
}

// RenderRequest is the body of POST /v1/render. The document stays raw until
// it has been validated.
type RenderRequest struct {
	Document json.RawMessage `json:"document"`
	Template string          `json:"template"`
}
