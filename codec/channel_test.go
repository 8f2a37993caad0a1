package codec

import (
	"math"
	"testing"
)

// lossyChannels are the 8-bit values the byte rescale cannot recover:
// 128 shares 0.5 with 127, and 193..254 land one below themselves.
func lossyChannels() map[int]uint8 {
	lossy := map[int]uint8{128: 127}
	for v := 193; v <= 254; v++ {
		lossy[v] = uint8(v - 1)
	}
	return lossy
}

func TestChannelRoundTrip(t *testing.T) {
	lossy := lossyChannels()
	for v := 0; v <= 255; v++ {
		got := ToByteChannel(ToNormalizedFloat(uint8(v)))
		want, isLossy := lossy[v]
		if !isLossy {
			want = uint8(v)
		}
		if got != want {
			t.Errorf("round trip %d: got %d, want %d", v, got, want)
		}
	}
}

func TestChannelFixedPoints(t *testing.T) {
	if got := ToNormalizedFloat(127); got != 0.5 {
		t.Fatalf("ToNormalizedFloat(127) = %v, want 0.5", got)
	}
	if got := ToNormalizedFloat(255); got != 1.0 {
		t.Fatalf("ToNormalizedFloat(255) = %v, want 1.0", got)
	}
	if got := ToNormalizedFloat(0); got != 0 {
		t.Fatalf("ToNormalizedFloat(0) = %v, want 0", got)
	}
	if got := ToByteChannel(0.5); got != 127 {
		t.Fatalf("ToByteChannel(0.5) = %d, want 127", got)
	}
	if got := ToByteChannel(1.0); got != 255 {
		t.Fatalf("ToByteChannel(1.0) = %d, want 255", got)
	}
	if got := ToByteChannel(0); got != 0 {
		t.Fatalf("ToByteChannel(0) = %d, want 0", got)
	}
}

func TestChannelBounds(t *testing.T) {
	for v := 0; v <= 255; v++ {
		f := ToNormalizedFloat(uint8(v))
		if f < 0 || f > 1 {
			t.Fatalf("ToNormalizedFloat(%d) = %v, out of [0,1]", v, f)
		}
	}

	tests := []struct {
		in   float64
		want uint8
	}{
		{-1, 0},
		{-0.0001, 0},
		{1.5, 255},
		{1000, 255},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := ToByteChannel(tt.in); got != tt.want {
			t.Errorf("ToByteChannel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToByteChannelMonotonic(t *testing.T) {
	prev := ToByteChannel(0)
	for i := 1; i <= 4096; i++ {
		cur := ToByteChannel(float64(i) / 4096)
		if cur < prev {
			t.Fatalf("not monotonic at %d/4096: %d after %d", i, cur, prev)
		}
		prev = cur
	}
}
