// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts one normalized sample to 16-bit PCM, clamping
// to [-1, 1] first so an over-hot mix bus cannot wrap.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 on the positive side to avoid overflow
	return int16(x * 32767.0)
}

// AppendPCM16 converts a block of normalized samples and appends them to
// dst. The mixdown collector calls this once per block to grow a single
// PCM buffer instead of converting sample-by-sample at the call site.
func AppendPCM16(dst []int16, block []float32) []int16 {
	for _, x := range block {
		dst = append(dst, Float32ToInt16(x))
	}

	return dst
}
