// Package assembler builds palette documents from extracted color pairs.
package assembler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/color-game/palettetool/codec"
	"github.com/color-game/palettetool/extractor"
	"github.com/color-game/palettetool/models"
)

const (
	DefaultTitle = "untitled"
	DefaultTool  = "palettetool extract"
)

// Assembler stamps every document it builds with Tool and the time reported
// by Clock.
type Assembler struct {
	Tool  string
	URL   string
	Clock func() time.Time
}

// New returns an Assembler using the wall clock.
func New(tool string) *Assembler {
	if tool == "" {
		tool = DefaultTool
	}
	return &Assembler{Tool: tool, Clock: time.Now}
}

// PairError reports the pair that stopped assembly.
type PairError struct {
	Index int
	Pair  extractor.Pair
	Err   error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("color %d (%q): %v", e.Index, e.Pair.Name, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}

// Assemble converts pairs, in order, into the colors of a single new
// palette. Any value that is not a 3, 6 or 8 digit hex color aborts the
// whole document.
func (a *Assembler) Assemble(pairs []extractor.Pair) (models.PaletteDocument, error) {
	clock := a.Clock
	if clock == nil {
		clock = time.Now
	}

	palette := models.NewPalette(DefaultTitle, models.Provenance{
		ConversionTool: a.Tool,
		ConversionDate: strconv.FormatInt(clock().Unix(), 10),
		URL:            a.URL,
	})

	for i, pair := range pairs {
		rgba, err := codec.ParseHex(pair.Value)
		if err != nil {
			return models.PaletteDocument{}, &PairError{Index: i, Pair: pair, Err: err}
		}
		palette.Colors = append(palette.Colors, models.ColorFromRGBA8(pair.Name, rgba))
	}

	return models.PaletteDocument{Palettes: []models.Palette{palette}}, nil
}
