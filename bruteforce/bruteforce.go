// Package bruteforce searches for Vigenère keys that turn a base64-looking
// ciphertext into printable plaintext. Every candidate key is tried against
// every rotation of the Vigenère alphabet.
package bruteforce

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/vigenere"
)

const logRate = 100000

// Match is a key and alphabet rotation yielding printable plaintext.
type Match struct {
	Key       string
	Rotation  int
	Plaintext []byte
}

// Search runs the key search over ciphertext and returns every match,
// sorted by key then rotation.
func Search(ctx context.Context, ciphertext string, opts ...OptionFunc) ([]Match, error) {
	o := defaultOption()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if len(ciphertext)%4 != 0 {
		return nil, fmt.Errorf("%w: %d", alphabet.ErrBadLength, len(ciphertext))
	}
	for i := 0; i < len(ciphertext); i++ {
		if _, ok := o.vigenere.Index(ciphertext[i]); !ok {
			return nil, fmt.Errorf("ciphertext position %d: %w: %q", i, alphabet.ErrUnknownSymbol, ciphertext[i])
		}
	}

	rotations := make([]alphabet.Alphabet, o.vigenere.Len())
	for k := range rotations {
		rotations[k] = o.vigenere.Rotate(k)
	}

	o.logger.Info("bruteforce: starting",
		zap.Int("ciphertextLen", len(ciphertext)),
		zap.Int("words", len(o.words)),
		zap.String("keyAlphabet", o.keyAlphabet),
		zap.Int("minKeyLen", o.minKeyLen),
		zap.Int("maxKeyLen", o.maxKeyLen),
		zap.Int("workers", o.workers),
	)

	var (
		mu      sync.Mutex
		matches []Match
		tried   atomic.Uint64
	)

	g, ctx := errgroup.WithContext(ctx)
	keys := make(chan string, o.workers)

	// Key producer.
	g.Go(func() error {
		defer close(keys)
		send := func(key string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case keys <- key:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if len(o.words) > 0 {
			for _, w := range o.words {
				if err := send(w); err != nil {
					return err
				}
			}
			return nil
		}
		return enumerate(o.keyAlphabet, o.minKeyLen, o.maxKeyLen, send)
	})

	for i := 0; i < o.workers; i++ {
		g.Go(func() error {
			for {
				var key string
				select {
				case <-ctx.Done():
					return ctx.Err()
				case k, ok := <-keys:
					if !ok {
						return nil
					}
					key = k
				}

				found, err := tryKey(ciphertext, key, o.vigenere, rotations, o.plain)
				if err != nil {
					return err
				}
				if len(found) > 0 {
					o.logger.Info("bruteforce: match", zap.String("key", key), zap.Int("rotations", len(found)))
					mu.Lock()
					matches = append(matches, found...)
					mu.Unlock()
				}
				if n := tried.Add(1); n%logRate == 0 {
					o.logger.Debug("bruteforce: progress", zap.Uint64("keys", n))
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		o.logger.Info("bruteforce: interrupted", zap.Uint64("keys", tried.Load()), zap.Error(err))
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Key != matches[j].Key {
			return matches[i].Key < matches[j].Key
		}
		return matches[i].Rotation < matches[j].Rotation
	})

	o.logger.Info("bruteforce: done", zap.Uint64("keys", tried.Load()), zap.Int("matches", len(matches)))
	return matches, nil
}

func tryKey(ciphertext, key string, base alphabet.Alphabet, rotations []alphabet.Alphabet, plain func(byte) bool) ([]Match, error) {
	var found []Match
	for k, a := range rotations {
		candidate, err := vigenere.Encode(ciphertext, key, a, false)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		plaintext, err := alphabet.DecodeBase64(base, candidate)
		if err != nil {
			return nil, fmt.Errorf("key %q rotation %d: %w", key, k, err)
		}

		if accepts(plaintext, plain) {
			found = append(found, Match{Key: key, Rotation: k, Plaintext: plaintext})
		}
	}
	return found, nil
}

func accepts(data []byte, plain func(byte) bool) bool {
	for _, b := range data {
		if !plain(b) {
			return false
		}
	}
	return true
}

// enumerate calls fn with every key over symbols of length minLen..maxLen,
// shorter keys first, each length in symbol order.
func enumerate(symbols string, minLen, maxLen int, fn func(string) error) error {
	for n := minLen; n <= maxLen; n++ {
		idx := make([]int, n)
		key := make([]byte, n)
		for {
			for i, j := range idx {
				key[i] = symbols[j]
			}
			if err := fn(string(key)); err != nil {
				return err
			}

			// Advance the odometer.
			pos := n - 1
			for pos >= 0 {
				idx[pos]++
				if idx[pos] < len(symbols) {
					break
				}
				idx[pos] = 0
				pos--
			}
			if pos < 0 {
				break
			}
		}
	}
	return nil
}
