package alphabet

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	req := require.New(t)

	a, err := New("ABC")
	req.NoError(err)
	req.Equal(3, a.Len())
	req.Equal(byte('B'), a.At(1))
	req.Equal("ABC", a.String())

	i, ok := a.Index('C')
	req.True(ok)
	req.Equal(2, i)

	_, ok = a.Index('Z')
	req.False(ok)

	_, err = a.Lookup('Z')
	req.ErrorIs(err, ErrUnknownSymbol)
}

func TestNew_Invalid(t *testing.T) {
	req := require.New(t)

	_, err := New("")
	req.ErrorIs(err, ErrEmpty)

	_, err = New("ABCA")
	req.ErrorIs(err, ErrDuplicateSymbol)

	req.Panics(func() { MustNew("AA") })
}

func TestZeroValue(t *testing.T) {
	req := require.New(t)

	var a Alphabet
	_, ok := a.Index('A')
	req.False(ok)
	req.Equal(a, a.Rotate(3))
}

func TestRotate(t *testing.T) {
	req := require.New(t)

	a := MustNew("ABCD")
	req.Equal("DABC", a.Rotate(1).String())
	req.Equal("CDAB", a.Rotate(2).String())
	req.Equal("ABCD", a.Rotate(4).String())
	req.Equal("BCDA", a.Rotate(-1).String())

	i, ok := a.Rotate(1).Index('A')
	req.True(ok)
	req.Equal(1, i)
}

func TestBase64_Standard(t *testing.T) {
	req := require.New(t)

	data := []byte("any carnal plea")
	s := base64.RawStdEncoding.EncodeToString(data)

	got, err := DecodeBase64(Base64, s)
	req.NoError(err)
	req.Equal(data, got)

	enc, err := EncodeBase64(Base64, data)
	req.NoError(err)
	req.Equal(s, enc)
}

func TestBase64_CustomAlphabet(t *testing.T) {
	req := require.New(t)

	reversed := MustNew("/+9876543210zyxwvutsrqponmlkjihgfedcbaZYXWVUTSRQPONMLKJIHGFEDCBA")
	data := []byte("TheGia")

	enc, err := EncodeBase64(reversed, data)
	req.NoError(err)
	req.Len(enc, 8)

	dec, err := DecodeBase64(reversed, enc)
	req.NoError(err)
	req.Equal(data, dec)

	std, err := EncodeBase64(Base64, data)
	req.NoError(err)
	req.NotEqual(std, enc)
}

func TestBase64_PaddingSymbolInAlphabet(t *testing.T) {
	req := require.New(t)

	withPad := MustNew("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+=")
	data := []byte{0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x3F}

	enc, err := EncodeBase64(withPad, data)
	req.NoError(err)
	req.Equal("====AAA=", enc)

	dec, err := DecodeBase64(withPad, enc)
	req.NoError(err)
	req.Equal(data, dec)
}

func TestBase64_Errors(t *testing.T) {
	req := require.New(t)

	_, err := DecodeBase64(Base64, "abc")
	req.ErrorIs(err, ErrBadLength)

	_, err = DecodeBase64(Base64, "ab$d")
	req.ErrorIs(err, ErrUnknownSymbol)

	_, err = DecodeBase64(MustNew("ABC"), "ABCA")
	req.ErrorIs(err, ErrLengthMismatch)

	got, err := DecodeBase64(Base64, "")
	req.NoError(err)
	req.Empty(got)
}
