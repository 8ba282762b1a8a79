package bruteforce

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/bitstream"
)

// UnknownSymbol marks alphabet slots a recovery could not pin down.
const UnknownSymbol = '_'

const cancelCheckRate = 1024

var (
	ErrCribMismatch   = errors.New("crib contradicts the ciphertext")
	ErrCribTooLong    = errors.New("crib is longer than the ciphertext")
	ErrEmptyCipher    = errors.New("ciphertext is empty")
	ErrTooManySymbols = errors.New("ciphertext uses more than 64 symbols")

	errLimit = errors.New("result limit reached")
)

// Recovery is a plaintext found from a crib, with the secret producing it.
type Recovery struct {
	// Key is the Vigenère key. Empty for alphabet recovery.
	Key string
	// Alphabet is the substitution base64 alphabet, UnknownSymbol where the
	// ciphertext never uses a value. Empty for key recovery.
	Alphabet  string
	Plaintext []byte
}

// solver picks the 6-bit base64 value of every ciphertext position.
type solver interface {
	// candidates calls fn for each value position i may take. The solver
	// state reflects that choice while fn runs.
	candidates(i int, fn func(v byte) error) error
	recovery(plaintext []byte) Recovery
}

// RecoverAlphabet recovers the base64 alphabet of ciphertext, a base64 text
// whose symbols were substituted, given crib, a known prefix of the plaintext.
// The crib pins part of the alphabet; the rest is searched depth-first,
// pruning every branch that decodes to an unacceptable byte.
func RecoverAlphabet(ctx context.Context, ciphertext string, crib []byte, opts ...OptionFunc) ([]Recovery, error) {
	o, known, err := prepareCrib(ciphertext, crib, opts)
	if err != nil {
		return nil, err
	}

	var used [256]bool
	distinct := 0
	for i := 0; i < len(ciphertext); i++ {
		if !used[ciphertext[i]] {
			used[ciphertext[i]] = true
			distinct++
		}
	}
	if distinct > 64 {
		return nil, fmt.Errorf("%w: %d", ErrTooManySymbols, distinct)
	}

	root := newAlphabetSolver(ciphertext)
	for i, v := range known {
		if !root.bind(ciphertext[i], v) {
			return nil, fmt.Errorf("%w: position %d", ErrCribMismatch, i)
		}
	}

	return o.runRecovery(ctx, "alphabet", len(ciphertext), root.split())
}

// RecoverKey recovers Vigenère keys of ciphertext, a base64 text enciphered
// over the Vigenère alphabet, given crib, a known prefix of the plaintext.
// Keys come from the word list when set, otherwise every length in the key
// length range is tried, with key symbols not pinned by the crib searched
// over the key alphabet.
func RecoverKey(ctx context.Context, ciphertext string, crib []byte, opts ...OptionFunc) ([]Recovery, error) {
	o, known, err := prepareCrib(ciphertext, crib, opts)
	if err != nil {
		return nil, err
	}

	ct := make([]int, len(ciphertext))
	for i := 0; i < len(ciphertext); i++ {
		idx, ok := o.vigenere.Index(ciphertext[i])
		if !ok {
			return nil, fmt.Errorf("ciphertext position %d: %w: %q", i, alphabet.ErrUnknownSymbol, ciphertext[i])
		}
		ct[i] = idx
	}

	var jobs []solver
	if len(o.words) > 0 {
		for _, w := range o.words {
			s := newKeySolver(o.vigenere, ct, len(w), nil)
			for j := 0; j < len(w); j++ {
				idx, err := o.vigenere.Lookup(w[j])
				if err != nil {
					return nil, fmt.Errorf("word %q: %w", w, err)
				}
				s.key[j] = idx
			}
			if s.seed(known) {
				jobs = append(jobs, s)
			}
		}
	} else {
		symbols := make([]int, len(o.keyAlphabet))
		for i := 0; i < len(o.keyAlphabet); i++ {
			symbols[i], _ = o.vigenere.Index(o.keyAlphabet[i])
		}
		for n := o.minKeyLen; n <= o.maxKeyLen && n <= len(ct); n++ {
			s := newKeySolver(o.vigenere, ct, n, symbols)
			if !s.seed(known) {
				o.logger.Debug("bruteforce: key length contradicts crib", zap.Int("keyLen", n))
				continue
			}
			jobs = append(jobs, s)
		}
	}

	return o.runRecovery(ctx, "key", len(ciphertext), jobs)
}

func prepareCrib(ciphertext string, crib []byte, opts []OptionFunc) (*option, []byte, error) {
	o := defaultOption()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, nil, err
		}
	}
	if err := o.validate(); err != nil {
		return nil, nil, err
	}
	if ciphertext == "" {
		return nil, nil, ErrEmptyCipher
	}
	if len(ciphertext)%4 != 0 {
		return nil, nil, fmt.Errorf("%w: %d", alphabet.ErrBadLength, len(ciphertext))
	}

	known := sextets(crib)
	if len(known) > len(ciphertext) {
		return nil, nil, fmt.Errorf("%w: %d symbols for %d", ErrCribTooLong, len(known), len(ciphertext))
	}
	return o, known, nil
}

// sextets returns the base64 values fully determined by data. A trailing
// value sharing bits with bytes past the end of data is left out.
func sextets(data []byte) []byte {
	out := make([]byte, len(data)*8/6)
	r := bitstream.NewReader(bytes.NewReader(data))
	for i := range out {
		for j := 0; j < 6; j++ {
			// Never short: len(out)*6 <= len(data)*8.
			bit, _ := r.ReadBit()
			out[i] <<= 1
			if bit {
				out[i] |= 1
			}
		}
	}
	return out
}

// completedByte returns the plaintext byte finished by the value at i.
func completedByte(values []byte, i int) (byte, bool) {
	switch i % 4 {
	case 1:
		return values[i-1]<<2 | values[i]>>4, true
	case 2:
		return values[i-1]<<4 | values[i]>>2, true
	case 3:
		return values[i-1]<<6 | values[i], true
	}
	return 0, false
}

func decodeSextets(values []byte) []byte {
	out := make([]byte, 0, len(values)/4*3)
	for i := 3; i < len(values); i += 4 {
		for j := i - 2; j <= i; j++ {
			b, _ := completedByte(values, j)
			out = append(out, b)
		}
	}
	return out
}

func (o *option) runRecovery(ctx context.Context, mode string, size int, jobs []solver) ([]Recovery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.logger.Info("bruteforce: crib recovery starting",
		zap.String("mode", mode),
		zap.Int("ciphertextLen", size),
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", o.workers),
		zap.Int("limit", o.limit),
	)

	var (
		mu      sync.Mutex
		results []Recovery
		nodes   atomic.Uint64
	)

	g, ctx := errgroup.WithContext(ctx)
	queue := make(chan solver, o.workers)

	g.Go(func() error {
		defer close(queue)
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case queue <- job:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < o.workers; i++ {
		w := &walker{
			ctx:    ctx,
			values: make([]byte, size),
			plain:  o.plain,
			nodes:  &nodes,
			logger: o.logger,
		}
		w.found = func(s solver) error {
			r := s.recovery(decodeSextets(w.values))
			o.logger.Info("bruteforce: recovered", zap.String("key", r.Key), zap.String("alphabet", r.Alphabet))

			mu.Lock()
			defer mu.Unlock()
			if len(results) >= o.limit {
				return errLimit
			}
			results = append(results, r)
			if len(results) == o.limit {
				return errLimit
			}
			return nil
		}

		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case job, ok := <-queue:
					if !ok {
						return nil
					}
					if err := w.walk(job, 0); err != nil {
						return err
					}
				}
			}
		})
	}

	err := g.Wait()
	switch {
	case errors.Is(err, errLimit):
		o.logger.Info("bruteforce: result limit reached", zap.Int("limit", o.limit))
	case err != nil:
		o.logger.Info("bruteforce: interrupted", zap.Uint64("nodes", nodes.Load()), zap.Error(err))
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.Alphabet != b.Alphabet {
			return a.Alphabet < b.Alphabet
		}
		return bytes.Compare(a.Plaintext, b.Plaintext) < 0
	})

	o.logger.Info("bruteforce: crib recovery done", zap.Uint64("nodes", nodes.Load()), zap.Int("results", len(results)))
	return results, nil
}

// walker runs the depth-first search of one worker.
type walker struct {
	ctx    context.Context
	values []byte
	plain  func(byte) bool
	nodes  *atomic.Uint64
	logger *zap.Logger
	found  func(solver) error
}

func (w *walker) walk(s solver, i int) error {
	if i == len(w.values) {
		return w.found(s)
	}

	n := w.nodes.Add(1)
	if n%cancelCheckRate == 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}
	}
	if n%logRate == 0 {
		w.logger.Debug("bruteforce: progress", zap.Uint64("nodes", n))
	}

	return s.candidates(i, func(v byte) error {
		w.values[i] = v
		if b, ok := completedByte(w.values, i); ok && !w.plain(b) {
			return nil
		}
		return w.walk(s, i+1)
	})
}

// alphabetSolver maps ciphertext symbols to base64 values one to one.
type alphabetSolver struct {
	ciphertext string
	// -1 when unmapped.
	value  [256]int8
	symbol [64]int16
}

func newAlphabetSolver(ciphertext string) *alphabetSolver {
	s := &alphabetSolver{ciphertext: ciphertext}
	for i := range s.value {
		s.value[i] = -1
	}
	for i := range s.symbol {
		s.symbol[i] = -1
	}
	return s
}

// bind maps symbol c to value v, reporting false when either is already
// mapped elsewhere.
func (s *alphabetSolver) bind(c, v byte) bool {
	if cur := s.value[c]; cur >= 0 {
		return cur == int8(v)
	}
	if s.symbol[v] >= 0 {
		return false
	}
	s.value[c], s.symbol[v] = int8(v), int16(c)
	return true
}

func (s *alphabetSolver) unbind(c, v byte) {
	s.value[c], s.symbol[v] = -1, -1
}

// split fans the search out over the values of the first unmapped symbol.
func (s *alphabetSolver) split() []solver {
	for i := 0; i < len(s.ciphertext); i++ {
		c := s.ciphertext[i]
		if s.value[c] >= 0 {
			continue
		}

		var jobs []solver
		for v := 0; v < 64; v++ {
			if s.symbol[v] >= 0 {
				continue
			}
			job := *s
			job.bind(c, byte(v))
			jobs = append(jobs, &job)
		}
		return jobs
	}
	return []solver{s}
}

func (s *alphabetSolver) candidates(i int, fn func(byte) error) error {
	c := s.ciphertext[i]
	if v := s.value[c]; v >= 0 {
		return fn(byte(v))
	}

	for v := 0; v < 64; v++ {
		if s.symbol[v] >= 0 {
			continue
		}
		s.bind(c, byte(v))
		err := fn(byte(v))
		s.unbind(c, byte(v))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *alphabetSolver) recovery(plaintext []byte) Recovery {
	a := make([]byte, 64)
	for v, c := range s.symbol {
		if c < 0 {
			a[v] = UnknownSymbol
			continue
		}
		a[v] = byte(c)
	}
	return Recovery{Alphabet: string(a), Plaintext: plaintext}
}

// keySolver deciphers a Vigenère text with a partially known key.
type keySolver struct {
	a          alphabet.Alphabet
	ciphertext []int
	// Candidate key symbols, as indices into a.
	symbols []int
	// -1 when unknown.
	key []int
}

func newKeySolver(a alphabet.Alphabet, ciphertext []int, keyLen int, symbols []int) *keySolver {
	key := make([]int, keyLen)
	for i := range key {
		key[i] = -1
	}
	return &keySolver{a: a, ciphertext: ciphertext, symbols: symbols, key: key}
}

// seed pins the key symbols implied by the known plaintext values, reporting
// false when they contradict each other, a fixed key or the key alphabet.
func (s *keySolver) seed(known []byte) bool {
	n := s.a.Len()
	for i, v := range known {
		k := (s.ciphertext[i] - int(v) + n) % n
		j := i % len(s.key)
		switch {
		case s.key[j] == k:
		case s.key[j] >= 0:
			return false
		case !s.allowed(k):
			return false
		default:
			s.key[j] = k
		}
	}
	return true
}

func (s *keySolver) allowed(k int) bool {
	for _, sym := range s.symbols {
		if sym == k {
			return true
		}
	}
	return false
}

func (s *keySolver) candidates(i int, fn func(byte) error) error {
	n := s.a.Len()
	j := i % len(s.key)
	if k := s.key[j]; k >= 0 {
		return fn(byte((s.ciphertext[i] - k + n) % n))
	}

	for _, k := range s.symbols {
		s.key[j] = k
		err := fn(byte((s.ciphertext[i] - k + n) % n))
		s.key[j] = -1
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *keySolver) recovery(plaintext []byte) Recovery {
	key := make([]byte, len(s.key))
	for j, k := range s.key {
		key[j] = s.a.At(k)
	}
	return Recovery{Key: string(key), Plaintext: plaintext}
}
