package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ReadInputFile loads a whole file into memory for searching.
func ReadInputFile(path string) ([]byte, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %q", path)
	}
	return dat, nil
}

var errLimit = errors.New("file limit reached")

func hasAnySuffix(s string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// GatherAllPaths lists regular files under root whose names end in one of
// exts (any file when exts is empty). maxNum == 0 means no limit.
func GatherAllPaths(root string, exts []string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "error walking %v", s)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !hasAnySuffix(s, exts) {
			return nil
		}
		if maxNum > 0 && len(res) >= maxNum {
			return errLimit
		}
		res = append(res, s)
		return nil
	}
	err := filepath.WalkDir(root, walk)
	if err != nil && err != errLimit {
		return nil, err
	}
	return res, nil
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[A any](items []A, size int) [][]A {
	if size <= 0 {
		panic("Chunk size must be positive")
	}
	var res [][]A
	for len(items) > size {
		res = append(res, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		res = append(res, items)
	}
	return res
}
