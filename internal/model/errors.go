package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrInvalidPath = errors.New("invalid path")
	ErrIO          = errors.New("i/o error")
	ErrNotFound    = errors.New("not found")
)

// InvalidPathError reports a path that cannot be resolved to the
// requested kind.
type InvalidPathError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *InvalidPathError) Error() string {
	msg := fmt.Sprintf("invalid path %q", e.Path)
	if e.Kind != Undefined {
		msg += " for " + e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidPathError) Unwrap() error        { return e.Err }
func (e *InvalidPathError) Is(target error) bool { return target == ErrInvalidPath }

// IOError reports a permission or I/O failure while reading the tree.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error        { return e.Err }
func (e *IOError) Is(target error) bool { return target == ErrIO }

// NotFoundError reports a path that disappeared, typically mid-walk.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Path)
}

func (e *NotFoundError) Unwrap() error        { return e.Err }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// WrapFS classifies a filesystem error as *NotFoundError or *IOError.
// Nil, context errors and errors already classified are returned as is.
func WrapFS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrInvalidPath) || errors.Is(err, ErrIO) || errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Path: path, Err: err}
	}
	return &IOError{Op: op, Path: path, Err: err}
}
