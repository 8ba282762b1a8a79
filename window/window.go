// Package window decodes the hand-transcribed bit windows: the windows are
// concatenated, packed into bytes and inverted.
package window

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spacemeshos/cipherlab/bitstream"
)

var ErrMalformedWindow = errors.New("malformed window")

//go:embed windows.txt
var embedded string

// Window is an ordered sequence of 0/1 values, read row by row.
type Window []uint8

// Result holds the decoded form of a set of windows.
type Result struct {
	Bits     int
	Packed   []byte
	Inverted []byte
}

// Load parses the embedded windows.
func Load() ([]Window, error) {
	return Parse(strings.NewReader(embedded))
}

// Parse reads windows from r. Windows are separated by blank lines; lines
// starting with '#' are ignored; spaces and commas inside a row are skipped.
func Parse(r io.Reader) ([]Window, error) {
	var (
		windows []Window
		current Window
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(text, "#") {
			continue
		}
		if text == "" {
			if len(current) > 0 {
				windows = append(windows, current)
				current = nil
			}
			continue
		}

		for _, c := range text {
			switch c {
			case '0':
				current = append(current, 0)
			case '1':
				current = append(current, 1)
			case ' ', '\t', ',':
			default:
				return nil, fmt.Errorf("%w: line %d: unexpected %q", ErrMalformedWindow, line, c)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		windows = append(windows, current)
	}

	return windows, nil
}

// Concat joins windows in order.
func Concat(windows []Window) []uint8 {
	var n int
	for _, w := range windows {
		n += len(w)
	}

	all := make([]uint8, 0, n)
	for _, w := range windows {
		all = append(all, w...)
	}
	return all
}

// Decode concatenates windows, packs them (one-filling the last byte) and
// inverts every packed byte.
func Decode(windows []Window) (Result, error) {
	bits := Concat(windows)
	packed, err := bitstream.PackInts(bits)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Bits:     len(bits),
		Packed:   packed,
		Inverted: bitstream.Invert(packed),
	}, nil
}
