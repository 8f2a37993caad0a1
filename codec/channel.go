// Package codec converts color channels between the normalized float
// representation stored in palette documents and the 8-bit values most
// rendering tools expect.
package codec

import "math"

// ToNormalizedFloat maps an 8-bit channel into [0, 1].
//
// The mapping is v/256 with two fixed points: 127 is exactly 0.5 and 255 is
// exactly 1.0.
func ToNormalizedFloat(v uint8) float64 {
	switch v {
	case 127:
		return 0.5
	case 255:
		return 1.0
	}
	return float64(v) / 256.0
}

// ToByteChannel maps a normalized channel back to 8 bits. Input outside
// [0, 1] is clamped; NaN maps to 0.
func ToByteChannel(f float64) uint8 {
	if math.IsNaN(f) || f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}

	fixed := int(math.Floor(f * 256.0))
	if fixed == 128 {
		return 127
	}
	return uint8((fixed*255 + 192) >> 8)
}
