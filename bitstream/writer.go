package bitstream

import (
	"fmt"
	"io"
)

// BitWriter writes bits to an io.Writer.
type BitWriter struct {
	stream    io.Writer
	pending   [1]byte
	alignment uint8
}

// NewWriter returns a new instance of BitWriter.
func NewWriter(w io.Writer) *BitWriter {
	bw := new(BitWriter)
	bw.stream = w
	bw.alignment = 0 // most-significant bit
	return bw
}

// Write writes the first numBits of data to the stream, regardless of the alignment.
// A trailing partial byte contributes its MS bits. data is not modified.
func (bw *BitWriter) Write(data []byte, numBits int) error {
	if numBits < 0 || numBits > len(data)*8 {
		return fmt.Errorf("%w: %d bits requested from %d bytes", ErrBitCount, numBits, len(data))
	}

	var idx int
	for numBits >= 8 {
		if err := bw.WriteByte(data[idx]); err != nil {
			return err
		}
		numBits -= 8
		idx++
	}

	for i := 0; i < numBits; i++ {
		if err := bw.WriteBit(data[idx]&(0x80>>i) != 0); err != nil {
			return err
		}
	}

	return nil
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
func (bw *BitWriter) WriteByte(b byte) error {
	if bw.alignment == 0 {
		bw.pending[0] = b
		if err := bw.emit(); err != nil {
			return err
		}
		bw.pending[0] = 0
		return nil
	}

	// Fill the pending byte LS bits with the MS bits of b.
	bw.pending[0] |= b >> bw.alignment
	if err := bw.emit(); err != nil {
		return err
	}

	// Carry the LS bits of b over as the MS bits of the new pending byte.
	bw.pending[0] = b << (8 - bw.alignment)

	return nil
}

// WriteBit writes a single bit to the stream, MSB first.
func (bw *BitWriter) WriteBit(bit Bit) error {
	if bit {
		bw.pending[0] |= 0x80 >> bw.alignment
	}

	bw.alignment++

	if bw.alignment == 8 {
		if err := bw.emit(); err != nil {
			return err
		}
		bw.pending[0] = 0
		bw.alignment = 0
	}

	return nil
}

// Flush flushes the currently pending byte to the stream by filling its
// remaining LS bits with bit. It is a no-op when the stream is aligned.
func (bw *BitWriter) Flush(bit Bit) error {
	for bw.alignment != 0 {
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}

	return nil
}

func (bw *BitWriter) emit() error {
	n, err := bw.stream.Write(bw.pending[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}
