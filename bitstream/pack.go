package bitstream

import (
	"bytes"
	"fmt"
)

// Pack groups bits into bytes, 8 at a time, with the first bit of each group
// as the most-significant bit. A trailing partial group is emitted with its
// missing LS bits set to One.
func Pack(bits []Bit) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, (len(bits)+7)/8))
	w := NewWriter(buf)

	// bytes.Buffer writes never fail.
	for _, bit := range bits {
		_ = w.WriteBit(bit)
	}
	_ = w.Flush(One)

	return buf.Bytes()
}

// PackInts is Pack over 0/1 integers, as hand-transcribed bit data is usually kept.
func PackInts(bits []uint8) ([]byte, error) {
	bs := make([]Bit, len(bits))
	for i, v := range bits {
		b, err := FromInt(v)
		if err != nil {
			return nil, fmt.Errorf("bit %d: %w", i, err)
		}
		bs[i] = b
	}
	return Pack(bs), nil
}

// Unpack expands every byte of data into 8 bits, MSB first.
func Unpack(data []byte) []Bit {
	bits := make([]Bit, 0, len(data)*8)
	r := NewReader(bytes.NewReader(data))
	for {
		bit, err := r.ReadBit()
		if err != nil {
			// bytes.Reader only fails with io.EOF.
			break
		}
		bits = append(bits, bit)
	}
	return bits
}

// Invert returns a copy of data with every byte bitwise negated.
func Invert(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = 0xFF - b
	}
	return out
}
