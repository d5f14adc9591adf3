// Package simd provides an accelerated scan for the single byte that
// matters to specfile's host-code passthrough: '%' (spec.md §4.1 — host
// code is copied through verbatim except for '%' escaping and the
// %%/%{/%} delimiters). Host-code segments can be large and are almost
// entirely non-'%' bytes, so this is grounded on the teacher's
// (coregx/coregex) simd package: a golang.org/x/sys/cpu feature check
// selects a word-at-a-time scan on amd64 and falls back to a byte loop
// everywhere else, the same ascii_amd64.go/ascii_fallback.go split the
// teacher uses for its own single-byte-class detection.
package simd

// IndexPercent returns the index of the first '%' in data, or -1 if data
// contains none.
func IndexPercent(data []byte) int {
	if len(data) == 0 {
		return -1
	}
	return indexPercent(data)
}
