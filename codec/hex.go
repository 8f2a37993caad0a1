package codec

import (
	"fmt"
	"strings"
)

// RGBA8 is a color with 8-bit channels.
type RGBA8 struct {
	R, G, B, A uint8
}

// UnsupportedHexError reports a value that is not a 3, 6 or 8 digit hex color.
type UnsupportedHexError struct {
	Value  string
	Reason string
}

func (e *UnsupportedHexError) Error() string {
	return fmt.Sprintf("unsupported hex color %q: %s", e.Value, e.Reason)
}

// IsValidHex reports whether s, after an optional leading '#', holds only hex
// digits and has length 3, 6 or 8.
func IsValidHex(s string) bool {
	digits := strings.TrimPrefix(s, "#")
	switch len(digits) {
	case 3, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(digits); i++ {
		if _, ok := hexDigit(digits[i]); !ok {
			return false
		}
	}
	return true
}

// ParseHex decodes "#RGB", "#RRGGBB" or "#RRGGBBAA" (the '#' is optional).
// Short forms expand by digit duplication; forms without alpha are opaque.
func ParseHex(s string) (RGBA8, error) {
	digits := strings.TrimPrefix(s, "#")

	var expanded string
	switch len(digits) {
	case 3:
		var sb strings.Builder
		for i := 0; i < 3; i++ {
			sb.WriteByte(digits[i])
			sb.WriteByte(digits[i])
		}
		expanded = sb.String() + "ff"
	case 6:
		expanded = digits + "ff"
	case 8:
		expanded = digits
	default:
		return RGBA8{}, &UnsupportedHexError{Value: s, Reason: fmt.Sprintf("length %d is not 3, 6 or 8", len(digits))}
	}

	var out [4]uint8
	for i := range out {
		hi, okHi := hexDigit(expanded[2*i])
		lo, okLo := hexDigit(expanded[2*i+1])
		if !okHi || !okLo {
			return RGBA8{}, &UnsupportedHexError{Value: s, Reason: "contains non-hex characters"}
		}
		out[i] = hi<<4 | lo
	}

	return RGBA8{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
}

// HexRGB formats three normalized channels as six lowercase hex digits.
func HexRGB(r, g, b float64) string {
	return fmt.Sprintf("%02x%02x%02x", ToByteChannel(r), ToByteChannel(g), ToByteChannel(b))
}

// HexRGBA is HexRGB followed by the alpha byte.
func HexRGBA(r, g, b, a float64) string {
	return HexRGB(r, g, b) + fmt.Sprintf("%02x", ToByteChannel(a))
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
