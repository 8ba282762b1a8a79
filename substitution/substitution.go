// Package substitution implements monoalphabetic substitution between two
// alphabets of equal length.
package substitution

import (
	"fmt"

	"github.com/spacemeshos/cipherlab/alphabet"
)

// Substitute replaces every symbol of src by the symbol at the same position
// of to, as found in from.
func Substitute(src string, from, to alphabet.Alphabet) (string, error) {
	if from.Len() != to.Len() {
		return "", fmt.Errorf("%w: %d != %d", alphabet.ErrLengthMismatch, from.Len(), to.Len())
	}

	out := make([]byte, len(src))
	for i := 0; i < len(src); i++ {
		idx, err := from.Lookup(src[i])
		if err != nil {
			return "", fmt.Errorf("position %d: %w", i, err)
		}
		out[i] = to.At(idx)
	}
	return string(out), nil
}

// Encode maps plaintext over plain to ciphertext over cipher.
func Encode(plaintext string, plain, cipher alphabet.Alphabet) (string, error) {
	return Substitute(plaintext, plain, cipher)
}

// Decode maps ciphertext over cipher back to plaintext over plain.
func Decode(ciphertext string, plain, cipher alphabet.Alphabet) (string, error) {
	return Substitute(ciphertext, cipher, plain)
}
