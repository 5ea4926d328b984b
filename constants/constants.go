package constants

import (
	"os"
	"strconv"
)

// MML parser defaults
const (
	Timebase          = 48 // ticks per quarter note
	DefaultOctave     = 4
	DefaultNoteLength = 4
	MaxNotes          = 512
)

// search window bounds, in bytes
const (
	DefaultNoteGap = 6
	MinNoteGap     = 1
	MaxNoteGap     = 16
)

func GetDefaultNoteGap() int {
	return getIntEnv("MELO_NOTE_GAP", DefaultNoteGap)
}

func GetListenAddr() string {
	addr := os.Getenv("MELO_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetMaxResults caps how many matches a single HTTP search returns.
func GetMaxResults() int {
	return getIntEnv("MELO_MAX_RESULTS", 10000)
}

// GetMaxBodyBytes caps the size of an HTTP request body. Search bodies
// carry the whole file base64 encoded.
func GetMaxBodyBytes() int {
	return getIntEnv("MELO_MAX_BODY", 32<<20)
}

func GetMetadataTable() string {
	table := os.Getenv("METADATA_TABLE")
	if table != "" {
		return table
	}
	return "melosearch-metadata"
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func getIntEnv(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
