package models

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ContentHash returns the BLAKE2b-256 digest of the compact JSON encoding of
// doc. Raw metadata values are re-encoded with sorted object keys first, so
// documents differing only in key order or whitespace hash equally.
func ContentHash(doc PaletteDocument) (string, error) {
	canon := PaletteDocument{Palettes: make([]Palette, len(doc.Palettes))}
	for i, p := range doc.Palettes {
		var err error
		if p.Hints, err = canonicalMetadata(p.Hints); err != nil {
			return "", fmt.Errorf("palettes[%d].hints: %v", i, err)
		}
		if p.Gradients, err = canonicalMetadata(p.Gradients); err != nil {
			return "", fmt.Errorf("palettes[%d].gradients: %v", i, err)
		}
		if p.DitherPairs, err = canonicalMetadata(p.DitherPairs); err != nil {
			return "", fmt.Errorf("palettes[%d].dither_pairs: %v", i, err)
		}
		if p.Extra, err = canonicalMetadata(p.Extra); err != nil {
			return "", fmt.Errorf("palettes[%d]: %v", i, err)
		}
		canon.Palettes[i] = p
	}

	data, err := json.Marshal(canon)
	if err != nil {
		return "", fmt.Errorf("encoding document for hashing: %v", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalMetadata(m Metadata) (Metadata, error) {
	if m == nil {
		return nil, nil
	}
	out := make(Metadata, len(m))
	for k, raw := range m {
		var v interface{}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%s: %v", k, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", k, err)
		}
		out[k] = data
	}
	return out, nil
}
