package models

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"

	"github.com/color-game/palettetool/codec"
)

// Metadata holds opaque palette sections (hints, gradients, dither pairs).
// Values are kept as raw JSON so they survive load/store cycles untouched.
type Metadata map[string]json.RawMessage

// Color is a named RGBA color with channels normalized to [0, 1]
type Color struct {
	Name  string  `json:"name"`
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// ColorFromRGBA8 converts 8-bit channels to the stored representation
func ColorFromRGBA8(name string, c codec.RGBA8) Color {
	return Color{
		Name:  name,
		Red:   codec.ToNormalizedFloat(c.R),
		Green: codec.ToNormalizedFloat(c.G),
		Blue:  codec.ToNormalizedFloat(c.B),
		Alpha: codec.ToNormalizedFloat(c.A),
	}
}

// RGBA8 converts the color back to 8-bit channels
func (c Color) RGBA8() codec.RGBA8 {
	return codec.RGBA8{
		R: codec.ToByteChannel(c.Red),
		G: codec.ToByteChannel(c.Green),
		B: codec.ToByteChannel(c.Blue),
		A: codec.ToByteChannel(c.Alpha),
	}
}

// Hex returns the color as lowercase rrggbb
func (c Color) Hex() string {
	return codec.HexRGB(c.Red, c.Green, c.Blue)
}

// Provenance records which tool produced a palette and when
type Provenance struct {
	ConversionTool string `json:"conversion_tool"`
	ConversionDate string `json:"conversion_date"`
	URL            string `json:"url,omitempty"`
}

// Palette is an ordered, named collection of colors
type Palette struct {
	Title       string     `json:"title"`
	Source      Provenance `json:"source"`
	Colors      []Color    `json:"colors"`
	Hints       Metadata   `json:"hints"`
	Gradients   Metadata   `json:"gradients"`
	DitherPairs Metadata   `json:"dither_pairs"`

	// Extra keeps palette keys this package does not model (such as the
	// native converter's color_hash) so they survive load/store cycles.
	Extra Metadata `json:"-"`
}

var paletteFields = []string{"title", "source", "colors", "hints", "gradients", "dither_pairs"}

// paletteWire is the plain wire form of Palette
type paletteWire Palette

// UnmarshalJSON decodes the modeled fields and collects the rest into Extra
func (p *Palette) UnmarshalJSON(data []byte) error {
	var wire paletteWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var all Metadata
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range paletteFields {
		delete(all, key)
	}
	wire.Extra = nil
	if len(all) > 0 {
		wire.Extra = all
	}
	*p = Palette(wire)
	return nil
}

// MarshalJSON writes the modeled fields in order, then Extra keys sorted
func (p Palette) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(paletteWire(p))
	if err != nil || len(p.Extra) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		if !slices.Contains(paletteFields, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	buf := bytes.NewBuffer(data[:len(data)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		if raw := p.Extra[k]; raw != nil {
			buf.Write(raw)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewPalette returns an empty palette with initialized metadata sections
func NewPalette(title string, source Provenance) Palette {
	return Palette{
		Title:       title,
		Source:      source,
		Colors:      []Color{},
		Hints:       Metadata{},
		Gradients:   Metadata{},
		DitherPairs: Metadata{},
	}
}

// PaletteDocument is the interchange unit. Palettes[0] is the primary palette.
type PaletteDocument struct {
	Palettes []Palette `json:"palettes"`
}

// Primary returns the first palette, or false if the document is empty
func (d PaletteDocument) Primary() (Palette, bool) {
	if len(d.Palettes) == 0 {
		return Palette{}, false
	}
	return d.Palettes[0], true
}

// MarshalIndented encodes the document the way the CLI writes it
func (d PaletteDocument) MarshalIndented() ([]byte, error) {
	return json.MarshalIndent(d, "", "    ")
}
