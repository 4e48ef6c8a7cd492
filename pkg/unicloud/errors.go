package unicloud

import "fmt"

// ErrorKind classifies failures the way callers care about them, independent
// of which backend produced them. Providers translate their SDK errors into
// one of these kinds before returning; the original SDK error stays
// available through the cause chain.
type ErrorKind int

const (
	// ErrOther covers everything the taxonomy below doesn't.
	ErrOther ErrorKind = iota

	// ErrAuthentication: bad or missing credentials.
	ErrAuthentication

	// ErrNotFound: the remote object or bucket does not exist.
	ErrNotFound

	// ErrTransfer: the remote write or read failed (network, permission,
	// quota). Local filesystem problems are not ErrTransfer; those surface
	// as wrapped os errors.
	ErrTransfer
)

func (k ErrorKind) String() string {
	switch k {
	case ErrAuthentication:
		return "authentication"
	case ErrNotFound:
		return "not found"
	case ErrTransfer:
		return "transfer"
	default:
		return "other"
	}
}

// Error attaches an ErrorKind to an underlying cause. It cooperates with
// both github.com/pkg/errors (Cause) and the errors package (Unwrap).
type Error struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func WrapError(kind ErrorKind, cause error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *Error) Cause() error  { return e.cause }
func (e *Error) Unwrap() error { return e.cause }

// Kind walks the cause chain looking for a classified error. Unlike
// errors.Cause this stops at the first *Error rather than unwrapping all the
// way down to the SDK error.
func Kind(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		switch c := err.(type) {
		case interface{ Cause() error }:
			err = c.Cause()
		case interface{ Unwrap() error }:
			err = c.Unwrap()
		default:
			return ErrOther
		}
	}
	return ErrOther
}

func IsAuthentication(err error) bool { return Kind(err) == ErrAuthentication }
func IsNotFound(err error) bool       { return Kind(err) == ErrNotFound }
func IsTransfer(err error) bool       { return Kind(err) == ErrTransfer }
