// Package render evaluates user templates against a palette document.
package render

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/color-game/palettetool/codec"
	"github.com/color-game/palettetool/models"
)

// Data is what templates see: {{range (index .Doc.Palettes 0).Colors}}
type Data struct {
	Doc models.PaletteDocument
}

// Funcs returns the filters available to templates. All are pure.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"hexcolor_rgb":  HexColorRGB,
		"hexcolor_rgba": HexColorRGBA,
		"to_8bit":       To8Bit,
	}
}

// HexColorRGB formats a color as lowercase rrggbb.
func HexColorRGB(c models.Color) string {
	return codec.HexRGB(c.Red, c.Green, c.Blue)
}

// HexColorRGBA formats a color as lowercase rrggbbaa.
func HexColorRGBA(c models.Color) string {
	return codec.HexRGBA(c.Red, c.Green, c.Blue, c.Alpha)
}

// To8Bit converts one normalized channel to 0..255.
func To8Bit(f float64) int {
	return int(codec.ToByteChannel(f))
}

// Parse compiles a template with the palette filters installed.
func Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(Funcs()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return tmpl, nil
}

// Render validates the raw document, then executes the template. Output is
// written to w only once execution has succeeded.
func Render(w io.Writer, document []byte, name, text string) error {
	doc, err := models.ParseDocument(document)
	if err != nil {
		return err
	}
	return RenderDocument(w, doc, name, text)
}

// RenderDocument executes the template against an already validated document.
func RenderDocument(w io.Writer, doc models.PaletteDocument, name, text string) error {
	tmpl, err := Parse(name, text)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, Data{Doc: doc}); err != nil {
		return fmt.Errorf("rendering template %s: %w", name, err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}
