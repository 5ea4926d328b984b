package model

type SearchRequestBody struct {
	MML        string `json:"mml"`
	Data       []byte `json:"data"`
	MaxNoteGap int    `json:"max_note_gap"`
}

type SearchResult struct {
	Offset int    `json:"offset"`
	Bytes  []int  `json:"bytes"`
	Spans  []Span `json:"spans"`
}

type SearchResponse struct {
	Id         string         `json:"id"`
	NumMatches int            `json:"num_matches"`
	Truncated  bool           `json:"truncated"`
	Root       int            `json:"root"`
	Deltas     []int          `json:"deltas"`
	Results    []SearchResult `json:"matches"`
}

type ParseRequestBody struct {
	MML string `json:"mml"`
}

type ParseResponse struct {
	Notes  Notes `json:"notes"`
	Deltas []int `json:"deltas"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
