package modem

import (
	"errors"
)

// Status is the outcome of a modem operation as seen by its caller.
type Status int

const (
	StatusOK       Status = iota // the module confirmed the operation
	StatusError                  // the module answered ERROR or the request was invalid
	StatusNoAnswer               // nothing decisive arrived before the deadline
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "no_answer"
	}
}

// StatusOf classifies an error returned by a Modem operation.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrProtocol):
		return StatusError
	default:
		return StatusNoAnswer
	}
}
