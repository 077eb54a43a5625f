package net

import (
	"errors"
	"fmt"
)

// ErrLineTooLong ends a session whose input line overflows the read buffer.
var ErrLineTooLong = errors.New("line too long")

// BoundsError reports a decoded pixel command whose coordinates fall outside
// the canvas. It ends the session.
type BoundsError struct {
	Op            string
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s command parameters outside frame: (%d, %d) not in %dx%d",
		e.Op, e.X, e.Y, e.Width, e.Height)
}
