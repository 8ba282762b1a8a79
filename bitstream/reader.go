package bitstream

import (
	"io"
)

// BitReader reads bits from an io.Reader.
type BitReader struct {
	stream    io.Reader
	pending   [1]byte
	alignment uint8
}

// NewReader returns a new instance of BitReader.
func NewReader(r io.Reader) *BitReader {
	b := new(BitReader)
	b.stream = r
	b.alignment = 8
	return b
}

// ReadByte reads the next single byte from the stream, regardless of the alignment.
func (br *BitReader) ReadByte() (byte, error) {
	if br.alignment == 8 {
		if err := br.fill(); err != nil {
			return 0, err
		}
		return br.pending[0], nil
	}

	// The byte stream is not aligned.
	// Use the current byte remaining bits as MS bits, and the next byte MS bits as LS bits.
	current := br.pending[0] << br.alignment
	if err := br.fill(); err != nil {
		return 0, err
	}
	current |= br.pending[0] >> (8 - br.alignment)

	return current, nil
}

// ReadBit reads the next single bit from the stream, MSB first.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.alignment == 8 {
		if err := br.fill(); err != nil {
			return Zero, err
		}
		br.alignment = 0
	}

	msb := Bit(br.pending[0]&(0x80>>br.alignment) != 0)
	br.alignment++

	return msb, nil
}

// fill loads the next byte into pending, keeping the current alignment.
func (br *BitReader) fill() error {
	if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return err
	}
	return nil
}
