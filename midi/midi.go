package midi

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const velocity = 100

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("error parsing midi file %v: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

type reducedEvent struct {
	ticks     int64
	isNoteOff bool
	key       uint8
}

func reduceTrack(track smf.Track) []reducedEvent {
	var res []reducedEvent
	var absTicks int64
	for _, event := range track {
		absTicks += int64(event.Delta)
		var channel, key, vel uint8
		switch {
		case event.Message.GetNoteOn(&channel, &key, &vel):
			// note on with zero velocity is a note off
			res = append(res, reducedEvent{ticks: absTicks, isNoteOff: vel == 0, key: key})
		case event.Message.GetNoteOff(&channel, &key, &vel):
			res = append(res, reducedEvent{ticks: absTicks, isNoteOff: true, key: key})
		}
	}
	return res
}

func hasNoteOn(events []reducedEvent) bool {
	for _, evt := range events {
		if !evt.isNoteOff {
			return true
		}
	}
	return false
}

func pickTrack(s *smf.SMF, track int) ([]reducedEvent, error) {
	if track >= len(s.Tracks) {
		return nil, errors.Errorf("track %d out of range, file has %d tracks", track, len(s.Tracks))
	}
	if track >= 0 {
		return reduceTrack(s.Tracks[track]), nil
	}
	for _, tr := range s.Tracks {
		events := reduceTrack(tr)
		if hasNoteOn(events) {
			return events, nil
		}
	}
	return nil, errors.New("no track has notes")
}

// ExtractMelody turns one track into a monophonic note list in the MML
// timebase. When several notes start on the same tick only the highest
// one is kept. Times are shifted so the first note starts at 0.
func ExtractMelody(s *smf.SMF, track int) ([]model.Note, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || mt == 0 {
		return nil, errors.Errorf("unsupported time format %v", s.TimeFormat)
	}

	events, err := pickTrack(s, track)
	if err != nil {
		return nil, err
	}

	// prioritize smaller tick values then note off
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].ticks != events[j].ticks {
			return events[i].ticks < events[j].ticks
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	toTimebase := func(ticks int64) int {
		return int(ticks * constants.Timebase / int64(mt))
	}

	var notes []model.Note
	pending := make(map[uint8]int)
	for _, evt := range events {
		t := toTimebase(evt.ticks)
		if evt.isNoteOff {
			if idx, ok := pending[evt.key]; ok {
				notes[idx].Duration = t - notes[idx].Time
				delete(pending, evt.key)
			}
			continue
		}

		if n := len(notes); n > 0 && notes[n-1].Time == t {
			if int(evt.key) <= notes[n-1].Key {
				continue
			}
			delete(pending, uint8(notes[n-1].Key))
			notes = notes[:n-1]
		}
		pending[evt.key] = len(notes)
		notes = append(notes, model.Note{Time: t, Key: int(evt.key)})
	}

	if len(notes) == 0 {
		return nil, errors.Errorf("track %d has no notes", track)
	}

	start := notes[0].Time
	for i := range notes {
		notes[i].Time -= start
		// unterminated or sub-tick notes
		if notes[i].Duration <= 0 {
			notes[i].Duration = 1
		}
	}
	return notes, nil
}

// WriteMelody writes notes as a single track SMF on channel 1. The file
// resolution is the MML timebase so note times carry over unchanged.
func WriteMelody(w io.Writer, notes []model.Note) error {
	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))

	var cursor int
	for i, n := range notes {
		if n.Key < 0 || n.Key > 127 {
			return errors.Errorf("note %d: key %d is outside the MIDI range", i, n.Key)
		}
		if n.Time < cursor {
			return errors.Errorf("note %d starts at %d, before the previous note ends at %d", i, n.Time, cursor)
		}
		if n.Duration <= 0 {
			return errors.Errorf("note %d has no duration", i)
		}
		tr.Add(uint32(n.Time-cursor), gomidi.NoteOn(0, uint8(n.Key), velocity))
		tr.Add(uint32(n.Duration), gomidi.NoteOff(0, uint8(n.Key)))
		cursor = n.Time + n.Duration
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.Timebase)
	if err := s.Add(tr); err != nil {
		return errors.Wrap(err, "could not add track")
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write midi file")
	}
	return nil
}

func WriteMelodyFile(path string, notes []model.Note) error {
	var buf bytes.Buffer
	if err := WriteMelody(&buf, notes); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "could not write %v", path)
	}
	return nil
}
