package window

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	req := require.New(t)

	windows, err := Load()
	req.NoError(err)
	req.Len(windows, 5)
	for _, w := range windows {
		req.Len(w, 50)
	}

	req.Equal(Window{1, 0, 0, 0, 1, 1, 1, 0, 1, 1}, windows[0][:10])
	req.Equal(Window{1, 1, 0, 0, 0, 0, 0, 0, 1, 1}, windows[2][40:])
}

func TestDecode(t *testing.T) {
	req := require.New(t)

	windows, err := Load()
	req.NoError(err)

	res, err := Decode(windows)
	req.NoError(err)
	req.Equal(250, res.Bits)
	req.Len(res.Packed, 32)
	req.Len(res.Inverted, 32)

	// 10001110 11110010 ...
	req.Equal(byte(0x8E), res.Packed[0])
	req.Equal(byte(0xF2), res.Packed[1])

	// 250 = 31*8 + 2: the last byte holds the final two bits "11" then six fill ones.
	req.Equal(byte(0xFF), res.Packed[31])
	req.Equal(byte(0x00), res.Inverted[31])

	for i := range res.Packed {
		req.Equal(0xFF-res.Packed[i], res.Inverted[i])
	}
}

func TestParse(t *testing.T) {
	req := require.New(t)

	windows, err := Parse(strings.NewReader("# header\n1,0,1\n 0 1 \n\n\n11\n"))
	req.NoError(err)
	req.Equal([]Window{{1, 0, 1, 0, 1}, {1, 1}}, windows)

	windows, err = Parse(strings.NewReader(""))
	req.NoError(err)
	req.Empty(windows)
}

func TestParse_Malformed(t *testing.T) {
	req := require.New(t)

	_, err := Parse(strings.NewReader("101\n102\n"))
	req.ErrorIs(err, ErrMalformedWindow)
	req.Contains(err.Error(), "line 2")
}

func TestDecode_Partial(t *testing.T) {
	req := require.New(t)

	res, err := Decode([]Window{{1, 0}, {1}})
	req.NoError(err)
	req.Equal(3, res.Bits)
	req.Equal([]byte{0xBF}, res.Packed)
	req.Equal([]byte{0x40}, res.Inverted)
}

func TestConcat(t *testing.T) {
	req := require.New(t)

	req.Empty(Concat(nil))
	req.Equal([]uint8{1, 0, 0, 1}, Concat([]Window{{1, 0}, {0, 1}}))
}
