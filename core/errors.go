package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ConversionError.
type ErrorKind int

const (
	// KindEncoding means the input was not valid UTF-8.
	KindEncoding ErrorKind = iota + 1
	// KindInternal means an engine invariant broke. It is a defect.
	KindInternal
	// KindOther covers everything else, e.g. sanitizer or option failures.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindEncoding:
		return "encoding"
	case KindInternal:
		return "internal"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ConversionError is the only error type returned by the converter.
type ConversionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Errorf builds a ConversionError of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *ConversionError {
	return &ConversionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds a ConversionError around err.
func WrapError(kind ErrorKind, err error, message string) *ConversionError {
	return &ConversionError{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err is a ConversionError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ConversionError
	return errors.As(err, &ce) && ce.Kind == kind
}
