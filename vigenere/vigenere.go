// Package vigenere implements the Vigenère cipher, classic and autokey, over
// an arbitrary alphabet.
package vigenere

import (
	"fmt"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/shared"
)

// Table returns the tabula recta of a: row i, column j holds a[(i+j) mod n].
func Table(a alphabet.Alphabet) [][]byte {
	n := a.Len()
	table := make([][]byte, n)
	for i := range table {
		table[i] = make([]byte, n)
		for j := range table[i] {
			table[i][j] = a.At((i + j) % n)
		}
	}
	return table
}

// Encode enciphers src with key. With autokey the key is extended by the
// plaintext itself instead of repeating.
func Encode(src, key string, a alphabet.Alphabet, autokey bool) (string, error) {
	return apply(src, key, a, autokey, true)
}

// Decode deciphers src with key.
func Decode(src, key string, a alphabet.Alphabet, autokey bool) (string, error) {
	return apply(src, key, a, autokey, false)
}

func apply(src, key string, a alphabet.Alphabet, autokey, encode bool) (string, error) {
	if len(key) == 0 {
		return "", shared.ErrEmptyKey
	}

	n := a.Len()
	out := make([]byte, len(src))
	for i := 0; i < len(src); i++ {
		var k byte
		switch {
		case !autokey:
			k = key[i%len(key)]
		case i < len(key):
			k = key[i]
		case encode:
			k = src[i-len(key)]
		default:
			k = out[i-len(key)]
		}

		ki, err := a.Lookup(k)
		if err != nil {
			return "", fmt.Errorf("key position %d: %w", i, err)
		}
		si, err := a.Lookup(src[i])
		if err != nil {
			return "", fmt.Errorf("position %d: %w", i, err)
		}

		if encode {
			out[i] = a.At((si + ki) % n)
		} else {
			out[i] = a.At((si - ki + n) % n)
		}
	}
	return string(out), nil
}
