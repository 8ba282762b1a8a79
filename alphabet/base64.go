package alphabet

import (
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrBadLength = errors.New("base64 input length is not a multiple of 4")

func encoding(a Alphabet) (*base64.Encoding, error) {
	if a.Len() != 64 {
		return nil, fmt.Errorf("%w: base64 needs 64 symbols, got %d", ErrLengthMismatch, a.Len())
	}
	for _, c := range a.symbols {
		if c == '\r' || c == '\n' {
			return nil, fmt.Errorf("%w: %q is reserved", ErrUnknownSymbol, c)
		}
	}
	// Without padding '=' is an ordinary symbol.
	return base64.NewEncoding(a.String()).WithPadding(base64.NoPadding).Strict(), nil
}

// DecodeBase64 decodes s, a sequence of 4-symbol groups over a, into bytes.
// Every group yields 3 bytes; no padding is expected.
func DecodeBase64(a Alphabet, s string) ([]byte, error) {
	if len(s)%4 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadLength, len(s))
	}
	enc, err := encoding(a)
	if err != nil {
		return nil, err
	}

	// Reject unknown symbols up front so callers get a typed error.
	for i := 0; i < len(s); i++ {
		if _, ok := a.Index(s[i]); !ok {
			return nil, fmt.Errorf("%w: %q at %d", ErrUnknownSymbol, s[i], i)
		}
	}

	return enc.DecodeString(s)
}

// EncodeBase64 encodes data over a without padding.
func EncodeBase64(a Alphabet, data []byte) (string, error) {
	enc, err := encoding(a)
	if err != nil {
		return "", err
	}
	return enc.EncodeToString(data), nil
}
