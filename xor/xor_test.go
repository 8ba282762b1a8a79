package xor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	req := require.New(t)

	req.Equal([]byte{0x02, 0x06}, Split([]byte{0x01, 0x02, 0x03, 0x04}))
}

func TestSplit_Odd(t *testing.T) {
	req := require.New(t)

	// Halves are [0x01] and [0x03, 0xFF]; 0xFF has no partner.
	req.Equal([]byte{0x02}, Split([]byte{0x01, 0x03, 0xFF}))
	req.Empty(Split([]byte{0x42}))
	req.Empty(Split(nil))
}

func TestSplit_DoesNotMutate(t *testing.T) {
	req := require.New(t)

	buf := []byte{0x01, 0x02, 0x03, 0x04}
	Split(buf)
	req.Equal([]byte{0x01, 0x02, 0x03, 0x04}, buf)
}

func TestSplit_SwappedHalves(t *testing.T) {
	req := require.New(t)
	rnd := rand.New(rand.NewSource(7))

	for n := 0; n < 64; n += 2 {
		buf := make([]byte, n)
		rnd.Read(buf)

		mid := n / 2
		swapped := append(append([]byte{}, buf[mid:]...), buf[:mid]...)
		req.Equal(Split(buf), Split(swapped))
		req.Len(Split(buf), mid)
	}
}

func TestCombine(t *testing.T) {
	req := require.New(t)

	a := []byte{0xFF, 0x0F, 0xAA}
	b := []byte{0x0F, 0x0F}
	req.Equal([]byte{0xF0, 0x00}, Combine(a, b))
	req.Equal(Combine(a, b), Combine(b, a))
}

func TestRepeat(t *testing.T) {
	req := require.New(t)

	data := []byte("attack at dawn")
	key := []byte("key")

	enc, err := Repeat(data, key)
	req.NoError(err)
	req.NotEqual(data, enc)
	req.Equal(data[0]^'k', enc[0])
	req.Equal(data[3]^'k', enc[3])

	dec, err := Repeat(enc, key)
	req.NoError(err)
	req.Equal(data, dec)
}

func TestRepeat_EmptyKey(t *testing.T) {
	req := require.New(t)

	_, err := Repeat([]byte{1}, nil)
	req.ErrorIs(err, ErrEmptyKey)
}
