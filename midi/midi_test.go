package midi

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/5alad/loveemu-lab/mml"
	"github.com/5alad/loveemu-lab/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWrittenMelodyReadsBack(t *testing.T) {
	notes, err := mml.Parse("o5 c d8 r e4. <c16")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = WriteMelody(&buf, notes)
	assert.NoError(t, err)

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	got, err := ExtractMelody(s, -1)
	assert.NoError(t, err)
	if diff := cmp.Diff(notes, got); diff != "" {
		t.Errorf("melody changed after a round trip (-want +got):\n%s", diff)
	}
}

func TestExtractMelodyKeepsHighestOfChord(t *testing.T) {
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(0, gomidi.NoteOn(0, 64, 100))
	tr.Add(0, gomidi.NoteOn(0, 55, 100))
	tr.Add(96, gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOff(0, 64))
	tr.Add(0, gomidi.NoteOff(0, 55))
	tr.Add(0, gomidi.NoteOn(0, 62, 100))
	tr.Add(48, gomidi.NoteOn(0, 62, 0))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}

	notes, err := ExtractMelody(s, 0)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.Note{
		{Time: 0, Key: 64, Duration: 48},
		{Time: 48, Key: 62, Duration: 24},
	}, notes)
}

func TestExtractMelodyQuarterNoteMatchesMML(t *testing.T) {
	want, err := mml.Parse("o5c4")
	if err != nil {
		t.Fatal(err)
	}

	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}

	notes, err := ExtractMelody(s, 0)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(want, notes)
	assert.Equal(48, notes[0].Duration)
}

func TestWriteMelodyKeepsQuarterNoteLength(t *testing.T) {
	notes, err := mml.Parse("c4")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteMelody(&buf, notes))
	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	assert.True(ok)
	assert.Equal(uint16(48), mt.Resolution())

	var off int64
	var ticks int64
	for _, evt := range s.Tracks[0] {
		ticks += int64(evt.Delta)
		var ch, key uint8
		if evt.Message.GetNoteEnd(&ch, &key) {
			off = ticks
		}
	}
	// one quarter note at the file resolution
	assert.Equal(int64(mt.Resolution()), off)
}

func TestExtractMelodyTrackOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMelody(&buf, []model.Note{{Time: 0, Key: 60, Duration: 48}})
	assert.NoError(t, err)

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	_, err = ExtractMelody(s, 3)
	assert.Error(t, err)
}

func TestWriteMelodyRejectsKeysOutsideMidi(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.Error(WriteMelody(&buf, []model.Note{{Key: 128, Duration: 48}}))
	assert.Error(WriteMelody(&buf, []model.Note{{Key: -1, Duration: 48}}))
}

func TestReadMidiFile(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(err)

	path := filepath.Join(t.TempDir(), "melody.mid")
	notes := []model.Note{{Time: 0, Key: 48, Duration: 48}, {Time: 48, Key: 52, Duration: 24}}
	assert.NoError(WriteMelodyFile(path, notes))

	s, err := ReadMidiFile(path)
	if assert.NoError(err) {
		got, err := ExtractMelody(s, -1)
		assert.NoError(err)
		assert.Equal(notes, got)
	}
}
