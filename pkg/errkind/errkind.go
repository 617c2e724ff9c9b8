// Package errkind tags request errors with one of a small, closed set of kinds
// so the HTTP layer can map them to status codes without string matching.
package errkind

import (
	"errors"
)

// Kind classifies where in the request pipeline an error happened.
type Kind int

const (
	// Unknown is returned by KindOf for errors not produced by this package.
	Unknown Kind = iota
	// Input means no usable ticker list was supplied.
	Input
	// Quote means a single ticker could not be priced.
	Quote
	// Publish means the batch could not be delivered to the queue.
	Publish
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "InputError"
	case Quote:
		return "QuoteError"
	case Publish:
		return "PublishError"
	default:
		return "UnknownError"
	}
}

// Error is a kind-tagged error. Msg is the caller-facing text, Err the cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Msg
	case e.Msg == "":
		return e.Err.Error()
	default:
		return e.Msg + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewInput returns an Input error with a caller-facing message.
func NewInput(msg string) error {
	return &Error{Kind: Input, Msg: msg}
}

// NewQuote wraps a provider failure. The message is the cause's text so the
// per-ticker status reads "TICKER failed: <cause>".
func NewQuote(err error) error {
	return &Error{Kind: Quote, Err: err}
}

// NewPublish wraps a queue failure with the stage that failed.
func NewPublish(stage string, err error) error {
	return &Error{Kind: Publish, Msg: stage, Err: err}
}

// KindOf reports the kind of err, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
