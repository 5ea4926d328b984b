package model

// Note is a single pitched note. Key is an absolute semitone number as
// parsed, or a delta from the first note once it is part of a Pattern.
type Note struct {
	Time     int `json:"time" yaml:"time"`
	Key      int `json:"key" yaml:"key"`
	Duration int `json:"duration" yaml:"duration"`
}

type Notes = []Note

// Pattern is a melody normalized to its first note. Notes[0].Key is
// always 0 and Root keeps the absolute key it was normalized from.
type Pattern struct {
	Root  int   `json:"root" yaml:"root"`
	Notes Notes `json:"notes" yaml:"notes"`
}

func (p Pattern) Len() int {
	return len(p.Notes)
}

func (p Pattern) Deltas() []int {
	res := make([]int, len(p.Notes))
	for i, n := range p.Notes {
		res[i] = n.Key
	}
	return res
}
