package transposition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/shared"
)

var upper = alphabet.MustNew("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

func TestEncode(t *testing.T) {
	req := require.New(t)

	// ZEBRAS -> columns ordered A(4) B(2) E(1) R(3) S(5) Z(0).
	enc, err := Encode("WEAREDISCOVEREDFLEEATONCE", "ZEBRAS", upper)
	req.NoError(err)
	req.Equal("EVLNACDTESEAROFODEECWIREE", enc)
}

func TestRoundTrip(t *testing.T) {
	req := require.New(t)

	for _, tc := range []struct{ src, key string }{
		{"WEAREDISCOVEREDFLEEATONCE", "ZEBRAS"},
		{"ABCDEF", "CAB"},
		{"ABCDEFG", "CAB"},
		{"A", "LONGKEY"},
		{"", "KEY"},
		{"TIEDKEYS", "AAB"},
	} {
		enc, err := Encode(tc.src, tc.key, upper)
		req.NoError(err)
		req.Len(enc, len(tc.src))

		dec, err := Decode(enc, tc.key, upper)
		req.NoError(err)
		req.Equal(tc.src, dec, "key %s", tc.key)
	}
}

func TestStableTies(t *testing.T) {
	req := require.New(t)

	// Equal key symbols keep their left-to-right order.
	enc, err := Encode("ABCD", "AA", upper)
	req.NoError(err)
	req.Equal("ACBD", enc)
}

func TestEncodeRows(t *testing.T) {
	req := require.New(t)

	// CAB ranks columns 1, 2, 0.
	enc, err := EncodeRows("ABCDEF", "CAB", upper)
	req.NoError(err)
	req.Equal("BCAEFD", enc)

	// The short final row only permutes the columns it has.
	enc, err = EncodeRows("ABCDEFGH", "CAB", upper)
	req.NoError(err)
	req.Equal("BCAEFDHG", enc)
}

func TestRowsRoundTrip(t *testing.T) {
	req := require.New(t)

	for _, tc := range []struct{ src, key string }{
		{"WEAREDISCOVEREDFLEEATONCE", "ZEBRAS"},
		{"ABCDEFG", "CAB"},
		{"A", "LONGKEY"},
		{"", "KEY"},
		{"TIEDKEYS", "AAB"},
	} {
		enc, err := EncodeRows(tc.src, tc.key, upper)
		req.NoError(err)
		req.Len(enc, len(tc.src))

		dec, err := DecodeRows(enc, tc.key, upper)
		req.NoError(err)
		req.Equal(tc.src, dec, "key %s", tc.key)
	}
}

func TestErrors(t *testing.T) {
	req := require.New(t)

	_, err := Encode("ABC", "", upper)
	req.ErrorIs(err, shared.ErrEmptyKey)

	_, err = Decode("ABC", "k3", upper)
	req.ErrorIs(err, alphabet.ErrUnknownSymbol)

	_, err = EncodeRows("ABC", "", upper)
	req.ErrorIs(err, shared.ErrEmptyKey)

	_, err = DecodeRows("ABC", "k3", upper)
	req.ErrorIs(err, alphabet.ErrUnknownSymbol)
}
