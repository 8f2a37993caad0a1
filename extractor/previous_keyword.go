package extractor

import "regexp"

var (
	hexToken       = regexp.MustCompile(`#[0-9a-fA-F]+`)
	tokenSeparator = regexp.MustCompile(`[^a-zA-Z0-9\-#]`)
)

// PreviousKeyword is the line heuristic. A line is considered only if it
// contains at least one '#'-prefixed hex run. The whole line is then split
// on anything that is not a letter, digit, '-' or '#'; an even token count
// yields (token[0], token[1]), (token[2], token[3]), ... and an odd count
// rejects the line.
//
// The hex match is only a gate. Pairs come from the generic tokens, so a
// value may be something other than a color.
type PreviousKeyword struct{}

// Extract scans text top to bottom, each line left to right.
func (PreviousKeyword) Extract(text string) []Pair {
	var pairs []Pair
	for _, line := range splitLines(text) {
		pairs = append(pairs, pairLine(line)...)
	}
	return pairs
}

func pairLine(line string) []Pair {
	if !hexToken.MatchString(line) {
		return nil
	}

	tokens := lineTokens(line)
	if len(tokens)%2 != 0 {
		return nil
	}

	pairs := make([]Pair, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		pairs = append(pairs, Pair{Name: tokens[i], Value: tokens[i+1]})
	}
	return pairs
}

func lineTokens(line string) []string {
	var tokens []string
	for _, tok := range tokenSeparator.Split(line, -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
