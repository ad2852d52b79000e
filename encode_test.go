package mbi5039

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrameKnownVector(t *testing.T) {
	// Halves [0 1 2 3] and [4 5 6 7] interleave to [0 4 1 5 2 6 3 7].
	// Group (0,4,1,5) emits 0, 1, rev(5)=0xA0, rev(4)=0x20.
	// Group (2,6,3,7) emits 2, 3, rev(7)=0xE0, rev(6)=0x60.
	// The concatenation is then reversed end to end.
	src := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	want := []byte{0x60, 0xE0, 3, 2, 0x20, 0xA0, 1, 0}

	dst := make([]byte, len(src))
	encodeFrame(dst, src)
	assert.Equal(t, want, dst)
}

func TestEncodeFrameDeterministic(t *testing.T) {
	src := make([]byte, 128)
	for i := range src {
		src[i] = byte(i*31 + 7)
	}

	a := make([]byte, len(src))
	b := make([]byte, len(src))
	encodeFrame(a, src)
	encodeFrame(b, src)
	assert.Equal(t, a, b, "same input must produce same output")
}

func TestEncodeFramePreservesInput(t *testing.T) {
	src := make([]byte, 64)
	for i := range src {
		src[i] = byte(i)
	}
	orig := make([]byte, len(src))
	copy(orig, src)

	encodeFrame(make([]byte, len(src)), src)
	assert.Equal(t, orig, src, "src must not be modified")
}

func TestEncodeFrameLength(t *testing.T) {
	// One frame per plausible panel geometry; output always fills dst.
	for _, n := range []int{8, 32, 64, 128, 256} {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(255 - i)
		}
		dst := make([]byte, n)
		encodeFrame(dst, src)

		// With an all-0xFF frame every output byte is 0xFF (reversal is a
		// fixed point), proving every position of dst was written.
		for i := range src {
			src[i] = 0xFF
		}
		encodeFrame(dst, src)
		for i, b := range dst {
			require.Equal(t, byte(0xFF), b, "dst[%d] for n=%d", i, n)
		}
	}
}

// reverseByte recovers the chain's bit reversal through encodeFrame: for a
// 4-byte frame the first output byte is the reversal of src[2].
func reverseByte(b byte) byte {
	var dst [4]byte
	encodeFrame(dst[:], []byte{0, 0, b, 0})
	return dst[0]
}

func TestBitReversalKnownValues(t *testing.T) {
	tests := []struct {
		in   byte
		want byte
	}{
		{0x00, 0x00},
		{0xFF, 0xFF},
		{0x01, 0x80},
		{0x80, 0x01},
		{0x10, 0x08},
		{0xA0, 0x05},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reverseByte(tt.in), "reverse of %#02x", tt.in)
	}
}

func TestBitReversalInvolution(t *testing.T) {
	for b := 0; b < 256; b++ {
		require.Equal(t, byte(b), reverseByte(reverseByte(byte(b))), "byte %#02x", b)
	}
}
