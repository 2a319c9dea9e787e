package internal

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a control session failure so the supervisor can count
// failures by kind. Every kind is recovered the same way.
type ErrorKind int

const (
	// KindConnection covers TCP connect, write and read failures
	KindConnection ErrorKind = iota
	// KindProtocol covers missing or unusable responses
	KindProtocol
	// KindValue covers a time token that is not a number
	KindValue
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindProtocol:
		return "protocol"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

type SessionError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%v: %v error: %v", e.Op, e.Kind, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of a session failure. Errors that did not come from
// the control session are KindUnknown.
func KindOf(err error) ErrorKind {
	var se *SessionError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func connectionError(op string, err error) error {
	return &SessionError{Kind: KindConnection, Op: op, Err: err}
}

func protocolError(op string, err error) error {
	return &SessionError{Kind: KindProtocol, Op: op, Err: err}
}

func valueError(op string, err error) error {
	return &SessionError{Kind: KindValue, Op: op, Err: err}
}
