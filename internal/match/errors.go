package match

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindFetchFailed       Kind = "FETCH_FAILED"
	KindStructureNotFound Kind = "STRUCTURE_NOT_FOUND"
	KindParseInconsistent Kind = "PARSE_INCONSISTENT"
	KindSinkWriteFailed   Kind = "SINK_WRITE_FAILED"
)

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrFetchFailed       = &Error{Kind: KindFetchFailed}
	ErrStructureNotFound = &Error{Kind: KindStructureNotFound}
	ErrParseInconsistent = &Error{Kind: KindParseInconsistent}
	ErrSinkWriteFailed   = &Error{Kind: KindSinkWriteFailed}
)

// Error is a classified pipeline error. It supports wrapping via Unwrap.
type Error struct {
	Kind    Kind
	URL     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf creates a classified error around a formatted message.
func Errorf(kind Kind, url, format string, args ...any) *Error {
	return &Error{Kind: kind, URL: url, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, url string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, URL: url, Err: err}
}

// KindOf returns the Kind of the first classified error in err's chain, or
// the empty Kind when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
