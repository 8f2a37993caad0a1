// Package extractor finds named hex colors in arbitrary text.
package extractor

import (
	"fmt"
	"slices"
	"strings"
)

// Pair is a candidate (name, value) found in a document. Value is not
// guaranteed to be a valid hex color; consumers validate it.
type Pair struct {
	Name  string
	Value string
}

// Extractor turns document text into ordered candidate pairs.
type Extractor interface {
	Extract(text string) []Pair
}

// Algorithm names an extraction strategy.
type Algorithm string

const (
	// AlgorithmPreviousKeyword pairs alternating tokens on lines that
	// contain a hex literal.
	AlgorithmPreviousKeyword Algorithm = "previous-keyword"

	// AlgorithmLexical lexes the document with a language-aware tokenizer
	// and pairs each hex literal with the identifier before it.
	AlgorithmLexical Algorithm = "lexical"
)

// ValidAlgorithms returns every supported algorithm name.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmPreviousKeyword,
		AlgorithmLexical,
	}
}

// IsValidAlgorithm checks if the given algorithm name is supported.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// Options tune strategy construction.
type Options struct {
	// Filename helps the lexical strategy pick a language. Optional.
	Filename string
	// Language forces a lexer by name, bypassing detection. Optional.
	Language string
}

// NewExtractor creates an Extractor for alg. An empty alg selects the
// previous-keyword heuristic.
func NewExtractor(alg Algorithm, opts Options) (Extractor, error) {
	switch alg {
	case "", AlgorithmPreviousKeyword:
		return PreviousKeyword{}, nil
	case AlgorithmLexical:
		return Lexical{Filename: opts.Filename, Language: opts.Language}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// splitLines splits on the same breaks a text editor would treat as line
// ends. Empty lines are dropped since they can never hold a color.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, isLineBreak)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
