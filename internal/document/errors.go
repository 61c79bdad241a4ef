package document

import (
	"errors"
	"fmt"
)

// Kind classifies why a document could not be read.
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindUnreadable    Kind = "unreadable"
	KindInvalidFormat Kind = "invalid_format"
	KindNoText        Kind = "no_text"
)

var (
	// ErrNotFound is matched by errors.Is for KindNotFound errors.
	ErrNotFound = errors.New("file not found")
	// ErrUnreadable is matched by errors.Is for KindUnreadable errors.
	ErrUnreadable = errors.New("file unreadable")
	// ErrInvalidFormat is matched by errors.Is for KindInvalidFormat errors.
	ErrInvalidFormat = errors.New("unsupported content")
	// ErrNoText is matched by errors.Is for KindNoText errors.
	ErrNoText = errors.New("no extractable text")
)

// Error is a structured document read failure.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.sentinel(), e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindUnreadable:
		return ErrUnreadable
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindNoText:
		return ErrNoText
	}
	return ErrUnreadable
}

// KindOf returns the kind of a document error, or "" if err is not one.
func KindOf(err error) Kind {
	var docErr *Error
	if errors.As(err, &docErr) {
		return docErr.Kind
	}
	return ""
}
