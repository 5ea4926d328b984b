package mml

import (
	"fmt"
	"strings"
	"testing"

	"github.com/5alad/loveemu-lab/model"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func keys(notes []model.Note) []int {
	var res []int
	for _, n := range notes {
		res = append(res, n.Key)
	}
	return res
}

func TestSingleNoteDefaults(t *testing.T) {
	notes, err := Parse("c")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.Note{{Time: 0, Key: 48, Duration: 48}}, notes)
}

func TestSharpAndFlatBothRaise(t *testing.T) {
	assert := assert.New(t)

	notes, err := Parse("c+d")
	assert.NoError(err)
	assert.Equal([]int{49, 50}, keys(notes))

	notes, err = Parse("c-")
	assert.NoError(err)
	assert.Equal([]int{49}, keys(notes))

	notes, err = Parse("e+-+")
	assert.NoError(err)
	assert.Equal([]int{55}, keys(notes))
}

func TestDottedDurations(t *testing.T) {
	cases := map[string]int{
		"c4.":   72,
		"c4..":  84,
		"c4...": 90,
		"c8.":   36,
		"c2":    96,
		"c1":    192,
		"c16":   12,
		"c3":    64,
		"l8c.":  36,
	}

	for mml, duration := range cases {
		t.Run(mml, func(t *testing.T) {
			notes, err := Parse(mml)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Len(notes, 1)
			assert.Equal(duration, notes[0].Duration)
		})
	}
}

func TestTimeAdvancesOverRests(t *testing.T) {
	notes, err := Parse("c r d8 r8. e")

	want := []model.Note{
		{Time: 0, Key: 48, Duration: 48},
		{Time: 96, Key: 50, Duration: 24},
		{Time: 156, Key: 52, Duration: 48},
	}
	assert.NoError(t, err)
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestOctaveCommands(t *testing.T) {
	assert := assert.New(t)

	notes, err := Parse("o5c<c>>c")
	assert.NoError(err)
	assert.Equal([]int{60, 72, 48}, keys(notes))

	notes, err = Parse("O2 A B")
	assert.NoError(err)
	assert.Equal([]int{33, 35}, keys(notes))

	notes, err = Parse("o-1c")
	assert.NoError(err)
	assert.Equal([]int{-12}, keys(notes))
}

func TestTempoIsIgnored(t *testing.T) {
	assert := assert.New(t)

	withTempo, err := Parse("t120.5 cde T90 f")
	assert.NoError(err)
	without, err := Parse("cdef")
	assert.NoError(err)
	assert.Equal(without, withTempo)
}

func TestHexTempo(t *testing.T) {
	assert := assert.New(t)
	want, err := Parse("g")
	assert.NoError(err)

	for _, mml := range []string{"t0x10g", "t0X1.8p4 g", "t+0xAg", "t1e2g"} {
		notes, err := Parse(mml)
		assert.NoError(err, mml)
		assert.Equal(want, notes, mml)
	}

	// c is a hex digit, so it belongs to the tempo
	notes, err := Parse("t0x10c")
	assert.NoError(err)
	assert.Empty(notes)
}

func TestWhitespaceIsIgnored(t *testing.T) {
	assert := assert.New(t)

	spaced, err := Parse(" o3\tl8 c\n e  g ")
	assert.NoError(err)
	packed, err := Parse("o3l8ceg")
	assert.NoError(err)
	assert.Equal(packed, spaced)
}

func TestLengthAfterSpace(t *testing.T) {
	notes, err := Parse("c 8")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(24, notes[0].Duration)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		mml  string
		kind error
		pos  int
	}{
		{"tx", ErrTempoNumber, 1},
		{"t", ErrTempoNumber, 1},
		{"t0", ErrTempo, 1},
		{"t-3", ErrTempo, 1},
		{"t0xg", ErrTempo, 1},
		{"t-0x10", ErrTempo, 1},
		{"tinf", ErrTempoNumber, 1},
		{"t0x1p99999", ErrTempoNumber, 1},
		{"t1e999", ErrTempoNumber, 1},
		{"ox", ErrOctaveNumber, 1},
		{"cdo", ErrOctaveNumber, 3},
		{"l", ErrDefaultLengthNumber, 1},
		{"l0", ErrDefaultLength, 1},
		{"l-4", ErrDefaultLength, 1},
		{"c0", ErrLength, 0},
		{"c -4", ErrLength, 0},
		{"c256", ErrLength, 0},
		{"c99999999999", ErrNoteLengthNumber, 1},
		{"c^", ErrTie, 1},
		{"c^4.", ErrTie, 1},
		{"^", ErrTie, 0},
		{"cdx", ErrUnknownChar, 2},
		{"c4 .", ErrUnknownChar, 3},
		{"h", ErrUnknownChar, 0},
	}

	for _, c := range cases {
		name := fmt.Sprintf("parse %q", c.mml)
		t.Run(name, func(t *testing.T) {
			notes, err := Parse(c.mml)

			assert := assert.New(t)
			assert.Nil(notes)
			assert.True(errors.Is(err, c.kind), "got %v", err)

			var pe *ParseError
			if assert.True(errors.As(err, &pe)) {
				assert.Equal(c.pos, pe.Pos)
			}
		})
	}
}

func TestTooManyNotes(t *testing.T) {
	assert := assert.New(t)

	notes, err := Parse(strings.Repeat("c", 512))
	assert.NoError(err)
	assert.Len(notes, 512)

	_, err = Parse(strings.Repeat("c", 513))
	assert.True(errors.Is(err, ErrTooManyNotes))

	notes, err = Parser{}.Parse(strings.Repeat("c", 1000))
	assert.NoError(err)
	assert.Len(notes, 1000)

	_, err = Parser{MaxNotes: 2}.Parse("c r r d e")
	assert.True(errors.Is(err, ErrTooManyNotes))
}

func TestRestsOnlyIsEmpty(t *testing.T) {
	notes, err := Parse("r r4 r8.")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(notes)
}

func TestErrorMessages(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("ccz")
	assert.EqualError(err, "unknown character 'z' at position 2")

	_, err = Parse("t")
	assert.EqualError(err, "illegal tempo number at end of input at position 1")

	_, err = Parse("l0")
	assert.EqualError(err, "illegal default length '0' at position 1")

	assert.EqualError(EmptyError(), "melody has no notes")
}
