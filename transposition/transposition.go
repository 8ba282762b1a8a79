// Package transposition implements keyed columnar transposition.
package transposition

import (
	"fmt"
	"sort"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/shared"
)

// columnOrder returns the column indices of the grid sorted by the alphabet
// position of the matching key symbol. Ties keep key order.
func columnOrder(key string, a alphabet.Alphabet) ([]int, error) {
	if len(key) == 0 {
		return nil, shared.ErrEmptyKey
	}

	ranks := make([]int, len(key))
	for i := 0; i < len(key); i++ {
		r, err := a.Lookup(key[i])
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		ranks[i] = r
	}

	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ranks[order[i]] < ranks[order[j]]
	})
	return order, nil
}

// Encode writes src row by row into a grid len(key) wide and reads it out
// column by column in key order. The final row may be short.
func Encode(src, key string, a alphabet.Alphabet) (string, error) {
	order, err := columnOrder(key, a)
	if err != nil {
		return "", err
	}

	width := len(key)
	out := make([]byte, 0, len(src))
	for _, col := range order {
		for idx := col; idx < len(src); idx += width {
			out = append(out, src[idx])
		}
	}
	return string(out), nil
}

// Decode inverts Encode.
func Decode(src, key string, a alphabet.Alphabet) (string, error) {
	order, err := columnOrder(key, a)
	if err != nil {
		return "", err
	}

	width := len(key)
	full := len(src) / width
	extra := len(src) % width

	out := make([]byte, len(src))
	pos := 0
	for _, col := range order {
		height := full
		if col < extra {
			height++
		}
		for row := 0; row < height; row++ {
			out[row*width+col] = src[pos]
			pos++
		}
	}
	return string(out), nil
}

// EncodeRows permutes the symbols inside every row of a grid len(key) wide
// without moving them between rows: output column i takes the input column
// ranked i-th by key. A short final row is permuted over the columns it has,
// in the same key order.
func EncodeRows(src, key string, a alphabet.Alphabet) (string, error) {
	order, err := columnOrder(key, a)
	if err != nil {
		return "", err
	}
	return permuteRows(src, order, true), nil
}

// DecodeRows inverts EncodeRows.
func DecodeRows(src, key string, a alphabet.Alphabet) (string, error) {
	order, err := columnOrder(key, a)
	if err != nil {
		return "", err
	}
	return permuteRows(src, order, false), nil
}

func permuteRows(src string, order []int, encode bool) string {
	width := len(order)
	out := make([]byte, len(src))
	for start := 0; start < len(src); start += width {
		row := order
		if n := len(src) - start; n < width {
			row = make([]int, 0, n)
			for _, col := range order {
				if col < n {
					row = append(row, col)
				}
			}
		}

		for i, col := range row {
			if encode {
				out[start+i] = src[start+col]
			} else {
				out[start+col] = src[start+i]
			}
		}
	}
	return string(out)
}
