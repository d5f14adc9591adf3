//go:build amd64

package simd

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// hasSSE42 gates the word-at-a-time path, mirroring the teacher's own
// hasAVX2-gated dispatch in simd/memchr_amd64.go: CPUs that report the
// feature take the 8-bytes-at-a-time SWAR scan below, everything else
// falls back to the portable byte loop in percent_fallback.go's shape
// (inlined here as indexPercentScalar so both paths live in one file).
var hasSSE42 = cpu.X86.HasSSE42

const percentMask = 0x2525252525252525 // '%' repeated across 8 bytes

// indexPercent dispatches on hasSSE42: the wide path below when available,
// otherwise a scalar byte-at-a-time scan.
func indexPercent(data []byte) int {
	if hasSSE42 {
		return indexPercentWide(data)
	}
	return indexPercentScalar(data)
}

// indexPercentWide finds '%' eight bytes at a time using the classic SWAR
// "has zero byte" trick (find a zero byte in data^percentMask), then
// falls back to a scalar loop for the final partial word.
func indexPercentWide(data []byte) int {
	i := 0
	for ; i+8 <= len(data); i += 8 {
		word := uint64(data[i]) | uint64(data[i+1])<<8 | uint64(data[i+2])<<16 | uint64(data[i+3])<<24 |
			uint64(data[i+4])<<32 | uint64(data[i+5])<<40 | uint64(data[i+6])<<48 | uint64(data[i+7])<<56
		x := word ^ percentMask
		// hasZero is nonzero iff some byte of x is exactly 0; its lowest
		// set bit is the high bit of the first such byte.
		hasZero := (x - 0x0101010101010101) & ^x & 0x8080808080808080
		if hasZero != 0 {
			return i + bits.TrailingZeros64(hasZero)/8
		}
	}
	for ; i < len(data); i++ {
		if data[i] == '%' {
			return i
		}
	}
	return -1
}

// indexPercentScalar is the CPU-feature-independent fallback, identical in
// shape to percent_fallback.go's indexPercent.
func indexPercentScalar(data []byte) int {
	for i, b := range data {
		if b == '%' {
			return i
		}
	}
	return -1
}
