package mbi5039

import "math/bits"

// encodeFrame transcodes a framebuffer in VerticalLSB layout into the shift
// order expected by the MBI5039 chain and stores the result in dst.
//
// The chain interleaves two logical output channels: the byte for a column
// in the top half of the panel is clocked out next to the byte for the same
// column in the bottom half. Within each interleaved 4-byte group (a, b, c,
// d) the boards route one channel of the pair with inverted bit order, so
// the group is emitted as a, c, reverse(d), reverse(b). The whole frame is
// then reversed because the shift register chain wants the last byte first.
//
// dst and src must have the same length, which must be a multiple of 4
// (guaranteed for any buffer allocated by New), and must not overlap. The
// function is pure: the output depends only on src, and src is never
// modified.
func encodeFrame(dst, src []byte) {
	half := len(src) / 2
	n := 0
	for i := 0; i+1 < half; i += 2 {
		dst[n] = src[i]
		dst[n+1] = src[i+1]
		dst[n+2] = bits.Reverse8(src[half+i+1])
		dst[n+3] = bits.Reverse8(src[half+i])
		n += 4
	}

	// Last byte shifts out first.
	for i, j := 0, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
}
