package bruteforce

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/entropy"
)

const (
	DefaultKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	DefaultMinKeyLen   = 1
	DefaultMaxKeyLen   = 3

	// MaxKeyLen bounds exhaustive enumeration.
	MaxKeyLen = 8

	// DefaultLimit caps the results of a crib recovery.
	DefaultLimit = 1000
)

type option struct {
	words       []string
	keyAlphabet string
	minKeyLen   int
	maxKeyLen   int
	vigenere    alphabet.Alphabet
	// plain accepts a single plaintext byte.
	plain func(byte) bool
	limit int
	// How many keys to try in parallel.
	workers int
	logger  *zap.Logger
}

func defaultOption() *option {
	return &option{
		keyAlphabet: DefaultKeyAlphabet,
		minKeyLen:   DefaultMinKeyLen,
		maxKeyLen:   DefaultMaxKeyLen,
		vigenere:    alphabet.Base64,
		plain:       entropy.IsPrintableByte,
		limit:       DefaultLimit,
		workers:     runtime.NumCPU(),
		logger:      zap.NewNop(),
	}
}

func (o *option) validate() error {
	if o.workers < 1 {
		return errors.New("`workers` must be greater than 0")
	}
	if len(o.words) > 0 {
		return nil
	}
	if o.keyAlphabet == "" {
		return errors.New("`keyAlphabet` is required when no words are given")
	}
	for i := 0; i < len(o.keyAlphabet); i++ {
		if _, ok := o.vigenere.Index(o.keyAlphabet[i]); !ok {
			return fmt.Errorf("key alphabet symbol %q: %w", o.keyAlphabet[i], alphabet.ErrUnknownSymbol)
		}
	}
	if o.minKeyLen < 1 || o.maxKeyLen < o.minKeyLen {
		return fmt.Errorf("invalid key length range [%d, %d]", o.minKeyLen, o.maxKeyLen)
	}
	if o.maxKeyLen > MaxKeyLen {
		return fmt.Errorf("invalid `maxKeyLen`; expected: <= %d, given: %d", MaxKeyLen, o.maxKeyLen)
	}
	return nil
}

type OptionFunc func(*option) error

// WithWords restricts the search to the given candidate keys.
func WithWords(words ...string) OptionFunc {
	return func(o *option) error {
		for _, w := range words {
			if w == "" {
				return errors.New("empty word in key list")
			}
		}
		o.words = words
		return nil
	}
}

// WithKeyAlphabet sets the symbols exhaustive key enumeration draws from.
func WithKeyAlphabet(symbols string) OptionFunc {
	return func(o *option) error {
		if _, err := alphabet.New(symbols); err != nil {
			return fmt.Errorf("key alphabet: %w", err)
		}
		o.keyAlphabet = symbols
		return nil
	}
}

// WithKeyLength sets the inclusive range of enumerated key lengths.
func WithKeyLength(minLen, maxLen int) OptionFunc {
	return func(o *option) error {
		o.minKeyLen = minLen
		o.maxKeyLen = maxLen
		return nil
	}
}

// WithVigenereAlphabet sets the alphabet whose rotations are tried.
// It must hold 64 symbols, since its output is base64-decoded.
func WithVigenereAlphabet(a alphabet.Alphabet) OptionFunc {
	return func(o *option) error {
		if a.Len() != 64 {
			return fmt.Errorf("%w: vigenere alphabet needs 64 symbols, got %d", alphabet.ErrLengthMismatch, a.Len())
		}
		o.vigenere = a
		return nil
	}
}

// WithCharset accepts only plaintexts made of the given symbols instead of
// any printable text.
func WithCharset(symbols string) OptionFunc {
	return func(o *option) error {
		if symbols == "" {
			return errors.New("charset is empty")
		}
		var set [256]bool
		for i := 0; i < len(symbols); i++ {
			set[symbols[i]] = true
		}
		o.plain = func(b byte) bool { return set[b] }
		return nil
	}
}

// WithLimit stops a crib recovery after n results.
func WithLimit(n int) OptionFunc {
	return func(o *option) error {
		if n < 1 {
			return errors.New("`limit` must be greater than 0")
		}
		o.limit = n
		return nil
	}
}

func WithWorkers(n int) OptionFunc {
	return func(o *option) error {
		if n < 1 {
			return errors.New("`workers` must be greater than 0")
		}
		o.workers = n
		return nil
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		o.logger = logger
		return nil
	}
}
