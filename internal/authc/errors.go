package authc

import (
	"errors"
	"fmt"
)

// Failure kinds. Every *Error matches exactly one of these with errors.Is.
var (
	ErrResolution        = errors.New("resolution failed")
	ErrConnection        = errors.New("connection failed")
	ErrSend              = errors.New("send failed")
	ErrNoResponse        = errors.New("no response")
	ErrMalformedResponse = errors.New("malformed response")
	ErrRejected          = errors.New("authentication rejected")
	ErrTimeout           = errors.New("authentication timeout")
)

// Error describes why an exchange did not end in success.
type Error struct {
	Kind     error
	Endpoint string
	// Reply holds the server's line for ErrRejected and ErrMalformedResponse.
	Reply string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("authc: %v", e.Kind)
	if e.Endpoint != "" {
		msg += " (" + e.Endpoint + ")"
	}
	switch {
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	case e.Reply != "":
		msg += ": " + e.Reply
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
