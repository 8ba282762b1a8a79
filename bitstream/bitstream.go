// Package bitstream provides wrappers for io.Writer and io.Reader to allow
// bit-granularity access to the stream, following the MSB pattern, where
// most-significant bits are written/read first.
package bitstream

import "errors"

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

var (
	ErrInvalidBit = errors.New("bit value is neither 0 nor 1")
	ErrBitCount   = errors.New("bit count out of range")
)

// FromInt converts a 0/1 integer into a Bit.
func FromInt(v uint8) (Bit, error) {
	switch v {
	case 0:
		return Zero, nil
	case 1:
		return One, nil
	}
	return Zero, ErrInvalidBit
}

func (b Bit) String() string {
	if b {
		return "1"
	}
	return "0"
}
