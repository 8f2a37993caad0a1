package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FieldError describes one schema violation at a JSON path
type FieldError struct {
	Path    string
	Message string
}

func (fe FieldError) String() string {
	return fe.Path + ": " + fe.Message
}

// ValidationError collects every schema violation found in a document
type ValidationError struct {
	Fields []FieldError
}

func (ve *ValidationError) Error() string {
	msgs := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		msgs[i] = f.String()
	}
	return fmt.Sprintf("invalid palette document (%d problems): %s", len(ve.Fields), strings.Join(msgs, "; "))
}

type validator struct {
	fields []FieldError
}

func (v *validator) fail(path, format string, args ...interface{}) {
	v.fields = append(v.fields, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// ParseDocument decodes and validates a palette document. Every structural
// problem is reported at once in a *ValidationError; nothing is decoded into
// the typed document unless the schema holds.
func ParseDocument(data []byte) (PaletteDocument, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return PaletteDocument{}, fmt.Errorf("decoding palette document: %w", err)
	}

	v := &validator{}
	v.document(raw)
	if len(v.fields) > 0 {
		return PaletteDocument{}, &ValidationError{Fields: v.fields}
	}

	var doc PaletteDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return PaletteDocument{}, fmt.Errorf("decoding palette document: %w", err)
	}
	for i := range doc.Palettes {
		fillMetadata(&doc.Palettes[i])
	}
	return doc, nil
}

// Validate checks an in-memory document against the same schema rules
func Validate(doc PaletteDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = ParseDocument(data)
	return err
}

func fillMetadata(p *Palette) {
	if p.Hints == nil {
		p.Hints = Metadata{}
	}
	if p.Gradients == nil {
		p.Gradients = Metadata{}
	}
	if p.DitherPairs == nil {
		p.DitherPairs = Metadata{}
	}
	if p.Colors == nil {
		p.Colors = []Color{}
	}
}

func (v *validator) document(raw interface{}) {
	root, ok := raw.(map[string]interface{})
	if !ok {
		v.fail("$", "must be an object")
		return
	}

	palettes, ok := root["palettes"].([]interface{})
	if !ok {
		v.fail("palettes", "must be an array")
		return
	}
	if len(palettes) == 0 {
		v.fail("palettes", "must contain at least one palette")
	}
	for i, p := range palettes {
		v.palette(fmt.Sprintf("palettes[%d]", i), p)
	}
}

func (v *validator) palette(path string, raw interface{}) {
	pal, ok := raw.(map[string]interface{})
	if !ok {
		v.fail(path, "must be an object")
		return
	}

	v.str(path+".title", pal["title"], false)

	source, ok := pal["source"].(map[string]interface{})
	if !ok {
		v.fail(path+".source", "must be an object")
	} else {
		v.str(path+".source.conversion_tool", source["conversion_tool"], false)
		v.str(path+".source.conversion_date", source["conversion_date"], false)
		if u, present := source["url"]; present {
			v.str(path+".source.url", u, false)
		}
	}

	colors, ok := pal["colors"].([]interface{})
	if !ok {
		v.fail(path+".colors", "must be an array")
	} else {
		for i, c := range colors {
			v.color(fmt.Sprintf("%s.colors[%d]", path, i), c)
		}
	}

	for _, key := range []string{"hints", "gradients", "dither_pairs"} {
		section, present := pal[key]
		if !present || section == nil {
			continue
		}
		if _, ok := section.(map[string]interface{}); !ok {
			v.fail(path+"."+key, "must be an object")
		}
	}
}

func (v *validator) color(path string, raw interface{}) {
	col, ok := raw.(map[string]interface{})
	if !ok {
		v.fail(path, "must be an object")
		return
	}

	v.str(path+".name", col["name"], true)
	for _, ch := range []string{"red", "green", "blue", "alpha"} {
		v.channel(path+"."+ch, col[ch])
	}
}

func (v *validator) str(path string, raw interface{}, nonEmpty bool) {
	s, ok := raw.(string)
	if !ok {
		v.fail(path, "must be a string")
		return
	}
	if nonEmpty && s == "" {
		v.fail(path, "must not be empty")
	}
}

func (v *validator) channel(path string, raw interface{}) {
	num, ok := raw.(json.Number)
	if !ok {
		v.fail(path, "must be a number in [0,1]")
		return
	}
	f, err := num.Float64()
	if err != nil || f < 0 || f > 1 {
		v.fail(path, "must be a number in [0,1], got %s", num.String())
	}
}
