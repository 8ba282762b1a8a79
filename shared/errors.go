package shared

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyKey    = errors.New("key is empty")
	ErrEmptySource = errors.New("source is empty")
)

type InputError struct {
	Path string
	Op   string
	Err  error
}

func (err InputError) Error() string {
	return fmt.Sprintf("failed to %v `%v`: %v", err.Op, err.Path, err.Err)
}

func (err InputError) Unwrap() error {
	return err.Err
}
