package entity

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindHostUnavailable     ErrorKind = "host_unavailable"
	KindInvalidRequest      ErrorKind = "invalid_request"
	KindStorageWriteFailure ErrorKind = "storage_write_failure"
)

var (
	ErrHostUnavailable     = errors.New("host capability unavailable")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrStorageWriteFailure = errors.New("storage write failed")
)

// Error carries the failure kind of an operation. None of the kinds is fatal:
// each one degrades a single feature.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrHostUnavailable:
		return e.Kind == KindHostUnavailable
	case ErrInvalidRequest:
		return e.Kind == KindInvalidRequest
	case ErrStorageWriteFailure:
		return e.Kind == KindStorageWriteFailure
	}
	return false
}

func NewInvalidRequest(op, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Op: op, Err: fmt.Errorf(format, args...)}
}

func NewHostUnavailable(op string) *Error {
	return &Error{Kind: KindHostUnavailable, Op: op}
}

func NewStorageWriteFailure(op string, err error) *Error {
	return &Error{Kind: KindStorageWriteFailure, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
