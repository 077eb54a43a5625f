package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a recognised command with malformed arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBlankLine is returned for lines with nothing but whitespace.
	ErrBlankLine = errors.New("blank line")
)

// UnknownCommandError reports a line that names no known command.
type UnknownCommandError struct {
	Line string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %q", e.Line)
}

// IsDecodeError reports whether err came out of DecodeCommand, i.e. whether a
// connection can shrug it off and keep reading.
func IsDecodeError(err error) bool {
	var unknown *UnknownCommandError
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrBlankLine) || errors.As(err, &unknown)
}
