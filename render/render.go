// Package render formats byte buffers as text for visual inspection:
// per-bit marker rows, hex strings and fixed-size grids.
package render

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"

	DefaultBytesPerRow = 8
)

type option struct {
	one         string
	zero        string
	bytesPerRow int
}

type Option func(*option)

// WithMarkers sets the strings emitted for set and unset bits.
func WithMarkers(one, zero string) Option {
	return func(o *option) {
		o.one = one
		o.zero = zero
	}
}

// WithPlain emits uncoloured "1" and "0".
func WithPlain() Option {
	return WithMarkers("1", "0")
}

// WithBytesPerRow sets how many bytes are rendered before a line break.
// Values < 1 are ignored.
func WithBytesPerRow(n int) Option {
	return func(o *option) {
		if n > 0 {
			o.bytesPerRow = n
		}
	}
}

func defaultOption() *option {
	return &option{
		one:         ansiRed + "1",
		zero:        ansiGreen + "0",
		bytesPerRow: DefaultBytesPerRow,
	}
}

// Bits writes every bit of data, MSB first, as one of two markers.
// A line break follows every bytesPerRow bytes.
func Bits(w io.Writer, data []byte, opts ...Option) error {
	o := defaultOption()
	for _, opt := range opts {
		opt(o)
	}

	bw := bufio.NewWriter(w)
	for i, b := range data {
		for bit := 7; bit >= 0; bit-- {
			marker := o.zero
			if b&(1<<uint(bit)) != 0 {
				marker = o.one
			}
			if _, err := bw.WriteString(marker); err != nil {
				return err
			}
		}
		if (i+1)%o.bytesPerRow == 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// BitsString is Bits rendered into a string.
func BitsString(data []byte, opts ...Option) string {
	var sb strings.Builder
	// strings.Builder writes never fail.
	_ = Bits(&sb, data, opts...)
	return sb.String()
}

// Hex returns data as a contiguous lowercase hex string.
func Hex(data []byte) string {
	return hex.EncodeToString(data)
}

// ByteList returns data as a decimal list, e.g. "[1, 2, 3]".
func ByteList(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = strconv.Itoa(int(b))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Grid writes up to rows*cols bytes of data, cols per line, each as a
// two-wide hex cell followed by a space. Output stops at the end of data.
func Grid(w io.Writer, data []byte, rows, cols int) error {
	if rows < 0 || cols < 1 {
		return fmt.Errorf("invalid grid size %dx%d", rows, cols)
	}

	bw := bufio.NewWriter(w)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx >= len(data) {
				if c > 0 {
					if err := bw.WriteByte('\n'); err != nil {
						return err
					}
				}
				return bw.Flush()
			}
			if _, err := fmt.Fprintf(bw, "%2x ", data[idx]); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
