package persistence

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/spacemeshos/cipherlab/shared"
)

// ReadBuffer reads the whole file at path into memory.
func ReadBuffer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shared.InputError{Path: path, Op: "read", Err: err}
	}
	return data, nil
}

// WriteBuffer atomically replaces the file at path with data, creating the
// parent directory when missing.
func WriteBuffer(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, shared.OwnerReadWriteExec); err != nil {
			return shared.InputError{Path: dir, Op: "create", Err: err}
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return shared.InputError{Path: path, Op: "write", Err: err}
	}
	return nil
}
