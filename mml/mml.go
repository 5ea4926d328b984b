// Package mml parses a single-voice melody written in Music Macro Language.
//
// The accepted grammar is small: t (tempo, ignored), o (octave), l (default
// length), < and > (octave up and down), a-g (notes), r (rest) and ^ (tie,
// always rejected). Notes take an optional run of + or -, a length and dots.
package mml

import (
	"fmt"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/model"
)

// semitones from C, indexed by letter - 'a'
var classOffsets = [...]int{9, 11, 0, 2, 4, 5, 7}

type pitchKind int

const (
	pitched pitchKind = iota
	rest
	tie
)

type pitch struct {
	kind pitchKind
	key  int
}

// Parser holds the limits applied while parsing. MaxNotes <= 0 means no
// limit.
type Parser struct {
	MaxNotes int
}

// Parse parses s with the default note limit.
func Parse(s string) ([]model.Note, error) {
	return Parser{MaxNotes: constants.MaxNotes}.Parse(s)
}

type state struct {
	src           string
	pos           int
	octave        int
	timebase      int
	defaultLength int
	time          int
	maxNotes      int
	notes         []model.Note
}

func (p Parser) Parse(s string) ([]model.Note, error) {
	st := &state{
		src:           s,
		octave:        constants.DefaultOctave,
		timebase:      constants.Timebase,
		defaultLength: constants.DefaultNoteLength,
		maxNotes:      p.MaxNotes,
	}

	for st.pos < len(st.src) {
		var err error
		c := toLower(st.src[st.pos])
		switch {
		case isSpace(c):
			st.pos++
		case c == 't':
			err = st.parseTempo()
		case c == 'o':
			err = st.parseOctave()
		case c == 'l':
			err = st.parseDefaultLength()
		case c == '<':
			st.octave++
			st.pos++
		case c == '>':
			st.octave--
			st.pos++
		case (c >= 'a' && c <= 'g') || c == 'r' || c == '^':
			err = st.parseNote(c)
		default:
			err = st.fail(ErrUnknownChar, st.pos, "unknown character %s", st.describe(st.pos))
		}
		if err != nil {
			return nil, err
		}
	}

	return st.notes, nil
}

func (st *state) parseTempo() error {
	st.pos++
	tempo, end, ok := scanFloat(st.src, st.pos)
	if !ok {
		return st.fail(ErrTempoNumber, st.pos, "illegal tempo number %s", st.describe(st.pos))
	}
	if tempo <= 0 {
		return st.fail(ErrTempo, st.pos, "illegal tempo '%.1f'", tempo)
	}
	st.pos = end
	return nil
}

func (st *state) parseOctave() error {
	st.pos++
	octave, end, err := scanInt(st.src, st.pos)
	if err != nil || end == st.pos {
		return st.fail(ErrOctaveNumber, st.pos, "illegal octave number %s", st.describe(st.pos))
	}
	st.octave = octave
	st.pos = end
	return nil
}

func (st *state) parseDefaultLength() error {
	st.pos++
	length, end, err := scanInt(st.src, st.pos)
	if err != nil || end == st.pos {
		return st.fail(ErrDefaultLengthNumber, st.pos, "illegal default length %s", st.describe(st.pos))
	}
	if length <= 0 {
		return st.fail(ErrDefaultLength, st.pos, "illegal default length '%d'", length)
	}
	st.defaultLength = length
	st.pos = end
	return nil
}

func (st *state) parseNote(c byte) error {
	start := st.pos
	st.pos++

	var p pitch
	switch c {
	case 'r':
		p.kind = rest
	case '^':
		p.kind = tie
	default:
		p = pitch{kind: pitched, key: classOffsets[c-'a'] + st.octave*12}
	}

	// '-' raises the key as well; kept for compatibility, see DESIGN.md
	for st.pos < len(st.src) && (st.src[st.pos] == '+' || st.src[st.pos] == '-') {
		p.key++
		st.pos++
	}

	length := st.defaultLength
	n, end, err := scanInt(st.src, st.pos)
	if err != nil {
		return st.fail(ErrNoteLengthNumber, st.pos, "illegal note length number %q", st.src[st.pos:end])
	}
	if end > st.pos {
		length = n
		st.pos = end
	}

	dots := 0
	for st.pos < len(st.src) && st.src[st.pos] == '.' {
		dots++
		st.pos++
	}

	if length <= 0 {
		return st.fail(ErrLength, start, "length must be greater than 0")
	}
	base := st.timebase * 4 / length
	if base == 0 {
		return st.fail(ErrLength, start, "length %d is shorter than one tick", length)
	}
	duration := base
	for k := 1; k <= dots; k++ {
		duration += base >> k
	}

	switch p.kind {
	case tie:
		return st.fail(ErrTie, start, "tie is not supported")
	case pitched:
		if st.maxNotes > 0 && len(st.notes) >= st.maxNotes {
			return st.fail(ErrTooManyNotes, start, "too many notes (max %d)", st.maxNotes)
		}
		st.notes = append(st.notes, model.Note{
			Time:     st.time,
			Key:      p.key,
			Duration: duration,
		})
	}

	st.time += duration
	return nil
}

func (st *state) fail(kind error, pos int, format string, args ...any) error {
	return &ParseError{
		Kind: kind,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (st *state) describe(pos int) string {
	if pos >= len(st.src) {
		return "at end of input"
	}
	return fmt.Sprintf("'%c'", st.src[pos])
}
