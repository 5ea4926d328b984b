package melody

import (
	"github.com/5alad/loveemu-lab/midi"
	"github.com/5alad/loveemu-lab/mml"
	"github.com/5alad/loveemu-lab/model"
)

// Normalize turns absolute keys into deltas from the first note. The input
// slice is left untouched.
func Normalize(notes []model.Note) (model.Pattern, error) {
	var p model.Pattern
	if len(notes) == 0 {
		return p, mml.EmptyError()
	}

	p.Root = notes[0].Key
	p.Notes = make(model.Notes, len(notes))
	copy(p.Notes, notes)
	for i := range p.Notes {
		p.Notes[i].Key -= p.Root
	}
	return p, nil
}

func FromMML(s string) (model.Pattern, error) {
	notes, err := mml.Parse(s)
	if err != nil {
		return model.Pattern{}, err
	}
	return Normalize(notes)
}

// FromMidiFile reads the melody of one track of a Standard MIDI File. A
// negative track picks the first track that has notes.
func FromMidiFile(path string, track int) (model.Pattern, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return model.Pattern{}, err
	}
	notes, err := midi.ExtractMelody(s, track)
	if err != nil {
		return model.Pattern{}, err
	}
	return Normalize(notes)
}
