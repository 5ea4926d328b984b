package mml

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrTempoNumber         = errors.New("illegal tempo number")
	ErrTempo               = errors.New("illegal tempo")
	ErrOctaveNumber        = errors.New("illegal octave number")
	ErrDefaultLengthNumber = errors.New("illegal default length number")
	ErrDefaultLength       = errors.New("illegal default length")
	ErrNoteLengthNumber    = errors.New("illegal note length number")
	ErrLength              = errors.New("illegal note length")
	ErrTie                 = errors.New("tie is not supported")
	ErrUnknownChar         = errors.New("unknown character")
	ErrTooManyNotes        = errors.New("too many notes")
	ErrEmpty               = errors.New("melody has no notes")
)

// ParseError reports where parsing stopped. Kind is one of the Err*
// values above, so errors.Is(err, ErrTie) works on the returned error.
type ParseError struct {
	Kind error
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// EmptyError is returned when a melody turns out to contain no pitched
// notes at all.
func EmptyError() *ParseError {
	return &ParseError{Kind: ErrEmpty, Pos: -1, Msg: ErrEmpty.Error()}
}
