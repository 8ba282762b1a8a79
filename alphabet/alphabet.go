// Package alphabet maps symbols to their positions in an ordered symbol set,
// and implements base64 over arbitrary 64-symbol alphabets.
package alphabet

import (
	"errors"
	"fmt"
)

const notFound = -1

var (
	ErrEmpty           = errors.New("alphabet is empty")
	ErrDuplicateSymbol = errors.New("duplicate symbol in alphabet")
	ErrUnknownSymbol   = errors.New("symbol not in alphabet")
	ErrLengthMismatch  = errors.New("alphabet lengths differ")
)

// Base64 is the standard base64 alphabet.
var Base64 = MustNew("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

// Alphabet is an ordered set of unique byte symbols.
type Alphabet struct {
	symbols []byte
	index   [256]int
}

// New returns the alphabet formed by the bytes of s, in order.
func New(s string) (Alphabet, error) {
	if len(s) == 0 {
		return Alphabet{}, ErrEmpty
	}

	a := Alphabet{symbols: []byte(s)}
	for i := range a.index {
		a.index[i] = notFound
	}
	for i, c := range a.symbols {
		if a.index[c] != notFound {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateSymbol, c)
		}
		a.index[c] = i
	}
	return a, nil
}

// MustNew is like New but panics on an invalid alphabet.
func MustNew(s string) Alphabet {
	a, err := New(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Alphabet) Len() int { return len(a.symbols) }

func (a Alphabet) At(i int) byte { return a.symbols[i] }

func (a Alphabet) String() string { return string(a.symbols) }

// Index returns the position of c in the alphabet.
func (a Alphabet) Index(c byte) (int, bool) {
	if len(a.symbols) == 0 {
		return 0, false
	}
	i := a.index[c]
	return i, i != notFound
}

// Lookup is like Index but returns ErrUnknownSymbol for symbols outside the alphabet.
func (a Alphabet) Lookup(c byte) (int, error) {
	i, ok := a.Index(c)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, c)
	}
	return i, nil
}

// Rotate returns a new alphabet where the symbol at position j moves to (j+k) mod n.
func (a Alphabet) Rotate(k int) Alphabet {
	n := len(a.symbols)
	if n == 0 {
		return a
	}

	k = ((k % n) + n) % n
	rotated := make([]byte, n)
	for j, c := range a.symbols {
		rotated[(j+k)%n] = c
	}
	// A permutation of a valid alphabet is valid.
	return MustNew(string(rotated))
}
