package extractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"

	"github.com/color-game/palettetool/codec"
)

// literalHex matches a hex run that ends on a word boundary, so "#abcdefg"
// does not yield "#abcdef".
var literalHex = regexp.MustCompile(`#[0-9a-fA-F]+\b`)

// Lexical tokenizes the document with a chroma lexer and pairs every valid
// hex literal with the nearest identifier before it on the same line.
// Comments are ignored. In stylesheets property keywords count as
// identifiers. A line holding a hex literal with no identifier before it is
// re-read with the PreviousKeyword heuristic, as are documents with no
// recognizable language.
type Lexical struct {
	Filename string
	Language string
}

// Extract implements Extractor.
func (l Lexical) Extract(text string) []Pair {
	lexer := l.lexer(text)
	if isPlainText(lexer) {
		return PreviousKeyword{}.Extract(text)
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return PreviousKeyword{}.Extract(text)
	}

	s := lineScanner{keywordNames: isStylesheet(lexer)}
	for tok := it(); tok != chroma.EOF; tok = it() {
		value := tok.Value
		for {
			i := strings.IndexAny(value, "\r\n")
			if i < 0 {
				s.token(tok.Type, value)
				break
			}
			s.token(tok.Type, value[:i])
			s.endLine()
			value = value[i+1:]
		}
	}
	s.endLine()
	return s.pairs
}

// lineScanner consumes a token stream one line at a time.
type lineScanner struct {
	keywordNames bool

	pairs     []Pair
	line      strings.Builder
	lineStart int
	name      string
	orphan    bool
}

func (s *lineScanner) token(typ chroma.TokenType, value string) {
	if value == "" {
		return
	}
	s.line.WriteString(value)

	switch {
	case typ.InCategory(chroma.Name), s.keywordNames && typ.InCategory(chroma.Keyword):
		s.name = trimQuotes(value)
	case typ.InCategory(chroma.Literal), typ == chroma.Text, typ == chroma.Other:
		hex, ok := firstHex(value)
		if !ok {
			return
		}
		if s.name == "" {
			s.orphan = true
			return
		}
		s.pairs = append(s.pairs, Pair{Name: s.name, Value: hex})
		s.name = ""
	}
}

func (s *lineScanner) endLine() {
	if s.orphan {
		s.pairs = append(s.pairs[:s.lineStart], PreviousKeyword{}.Extract(s.line.String())...)
	}
	s.line.Reset()
	s.lineStart = len(s.pairs)
	s.name = ""
	s.orphan = false
}

func (l Lexical) lexer(text string) chroma.Lexer {
	if l.Language != "" {
		if lx := lexers.Get(l.Language); lx != nil {
			return lx
		}
	}
	base := ""
	if l.Filename != "" {
		base = filepath.Base(l.Filename)
	}
	if lang := enry.GetLanguage(base, []byte(text)); lang != "" {
		if lx := lexers.Get(lang); lx != nil {
			return lx
		}
	}
	if base != "" {
		if lx := lexers.Match(base); lx != nil {
			return lx
		}
	}
	if lx := lexers.Analyse(text); lx != nil {
		return lx
	}
	return lexers.Fallback
}

func firstHex(s string) (string, bool) {
	for _, m := range literalHex.FindAllString(s, -1) {
		if codec.IsValidHex(m) {
			return m, true
		}
	}
	return "", false
}

func isPlainText(lx chroma.Lexer) bool {
	if lx == lexers.Fallback {
		return true
	}
	cfg := lx.Config()
	return cfg != nil && strings.EqualFold(cfg.Name, "plaintext")
}

func isStylesheet(lx chroma.Lexer) bool {
	cfg := lx.Config()
	if cfg == nil {
		return false
	}
	switch strings.ToLower(cfg.Name) {
	case "css", "scss", "sass", "lesscss", "less":
		return true
	}
	return false
}

func trimQuotes(s string) string {
	return strings.Trim(s, "\"'`")
}
