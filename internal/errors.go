package internal

import (
	"errors"
	"fmt"
)

// ErrNotFound is reported when a requested key, conversation or file is
// absent from every place it could live. Check with errors.Is.
var ErrNotFound = errors.New("not found")

// StorageError represents errors accessing a backing store file.
type StorageError struct {
	Path string
	Op   string // "open", "read", "delete", "vacuum"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents a JSON parse failure while reconstructing content
// for one identified conversation. Scan-time parse failures are tolerated
// and never surface as errors.
type ParseError struct {
	Source string // database path
	Key    string // storage key
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError wraps ErrNotFound with what was being looked for.
type NotFoundError struct {
	Kind string // "key", "conversation", "file"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// BatchDeleteError aggregates per-item failures from a batch deletion that
// freed nothing.
type BatchDeleteError struct {
	Errors []string
}

func (e *BatchDeleteError) Error() string {
	return fmt.Sprintf("batch delete failed: %s", joinErrors(e.Errors))
}

func joinErrors(errs []string) string {
	out := ""
	for i, s := range errs {
		if i > 0 {
			out += "; "
		}
		out += s
	}
	return out
}
