package trakt

import (
	"errors"
	"fmt"
)

// Kind classifies why a request failed
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindTransport
	KindStatus
	KindShape
	KindParse
)

var (
	// ErrInvalid is returned for arguments rejected before sending anything
	ErrInvalid = errors.New("invalid request")
	// ErrTransport is returned when no response could be obtained
	ErrTransport = errors.New("transport failure")
	// ErrStatus is returned for a non-success HTTP status
	ErrStatus = errors.New("unexpected status")
	// ErrShape is returned for valid JSON that does not match the expected record
	ErrShape = errors.New("unexpected payload shape")
	// ErrParse is returned when the body is not JSON
	ErrParse = errors.New("malformed payload")
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalid:
		return ErrInvalid
	case KindTransport:
		return ErrTransport
	case KindStatus:
		return ErrStatus
	case KindShape:
		return ErrShape
	case KindParse:
		return ErrParse
	}
	return nil
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error returned by every Trakt call
type Error struct {
	Kind     Kind
	Endpoint string
	// StatusCode is set for KindStatus, and for shape or parse failures
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("trakt %s: %s", e.Endpoint, e.Kind)
	if e.Kind == KindStatus {
		msg = fmt.Sprintf("%s %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels, so errors.Is(err, ErrStatus) works
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var traktErr *Error
	if errors.As(err, &traktErr) {
		return traktErr.StatusCode
	}
	return 0
}

func newError(kind Kind, ep endpoint, status int, err error) *Error {
	return &Error{Kind: kind, Endpoint: ep.name, StatusCode: status, Err: err}
}
