package model

// Span holds the earliest and latest positions, relative to the match
// offset, where a note's byte was seen inside its search window.
type Span struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

type Match struct {
	Offset int
	// one byte per note: firstByte + delta
	Bytes []byte
	Spans []Span
}
