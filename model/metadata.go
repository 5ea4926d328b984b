package model

type FileMetadata struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Game     string `json:"game,omitempty"`
	Composer string `json:"composer,omitempty"`
	Year     uint   `json:"year,omitempty"`
}

type FilenameToMetadata = map[string]FileMetadata
