// Package entropy measures byte-level statistics of a buffer.
package entropy

import "math"

// Histogram counts occurrences of every byte value.
func Histogram(data []byte) [256]int {
	var h [256]int
	for _, b := range data {
		h[b]++
	}
	return h
}

// Shannon returns the Shannon entropy of data in bits per byte, in [0, 8].
func Shannon(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	h := Histogram(data)
	total := float64(len(data))

	var e float64
	for _, count := range h {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		e -= p * math.Log2(p)
	}
	return e
}

// IsPrintable reports whether every byte of data is printable ASCII, tab or newline.
func IsPrintable(data []byte) bool {
	for _, b := range data {
		if !IsPrintableByte(b) {
			return false
		}
	}
	return true
}

// IsPrintableByte is IsPrintable for a single byte.
func IsPrintableByte(b byte) bool {
	switch {
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == '\t', b == '\n', b == '\r':
		return true
	}
	return false
}
