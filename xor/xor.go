// Package xor combines byte buffers with bitwise exclusive-or.
package xor

import "errors"

var ErrEmptyKey = errors.New("xor key is empty")

// Combine returns a[i] ^ b[i] for every offset present in both buffers.
func Combine(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Split halves buf at len(buf)/2 and XORs the two halves together.
// For odd lengths the trailing byte of the second half has no partner and is dropped.
func Split(buf []byte) []byte {
	mid := len(buf) / 2
	return Combine(buf[:mid], buf[mid:])
}

// Repeat XORs data with key, repeating key as many times as needed.
func Repeat(data, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out, nil
}
