package shared

import (
	"io"
	"strings"
	"unicode"
)

// ReadSource returns arg, or the whole of stdin with all whitespace removed
// when arg is StdinSource.
func ReadSource(arg string, stdin io.Reader) (string, error) {
	if arg != StdinSource {
		return arg, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", InputError{Path: StdinSource, Op: "read", Err: err}
	}

	src := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(b))
	if src == "" {
		return "", ErrEmptySource
	}
	return src, nil
}
