// Package search finds byte offsets whose surrounding bytes reproduce the
// pitch deltas of a melody.
//
// Every offset of the buffer is tried as the first note. Each following
// note must appear within a window of up to the note gap bytes after the
// earliest position found for the previous note. Only byte values are
// compared; the bytes in between are ignored.
package search

import (
	"context"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/model"
	"github.com/pkg/errors"
)

var ErrEmptyPattern = errors.New("pattern has no notes")

type NoteGapError struct {
	Gap int
}

func (e *NoteGapError) Error() string {
	if e.Gap < constants.MinNoteGap {
		return "search length too small"
	}
	return "search length too large"
}

func ValidateNoteGap(gap int) error {
	if gap < constants.MinNoteGap || gap > constants.MaxNoteGap {
		return &NoteGapError{Gap: gap}
	}
	return nil
}

// Scanner walks a buffer one candidate offset at a time. It is used like
// bufio.Scanner:
//
//	s, err := search.NewScanner(ctx, buf, pattern, gap)
//	for s.Next() {
//		m := s.Match()
//	}
//	err = s.Err()
type Scanner struct {
	done   <-chan struct{}
	ctx    context.Context
	buf    []byte
	deltas []int
	gap    int

	next  int
	first []int
	last  []int
	match model.Match
	err   error
}

func NewScanner(ctx context.Context, buf []byte, p model.Pattern, gap int) (*Scanner, error) {
	if err := ValidateNoteGap(gap); err != nil {
		return nil, err
	}
	if p.Len() == 0 {
		return nil, ErrEmptyPattern
	}

	return &Scanner{
		done:   ctx.Done(),
		ctx:    ctx,
		buf:    buf,
		deltas: p.Deltas(),
		gap:    gap,
		first:  make([]int, p.Len()),
		last:   make([]int, p.Len()),
	}, nil
}

// Next advances to the next matching offset. It returns false at the end
// of the buffer or once the context is done.
func (s *Scanner) Next() bool {
	for s.next < len(s.buf) {
		select {
		case <-s.done:
			s.err = s.ctx.Err()
			return false
		default:
		}

		offset := s.next
		s.next++
		if s.matchAt(offset) {
			s.match = s.build(offset)
			return true
		}
	}
	return false
}

func (s *Scanner) Match() model.Match {
	return s.match
}

func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) matchAt(offset int) bool {
	firstByte := int(s.buf[offset])

	// byte range check
	for _, delta := range s.deltas[1:] {
		if v := firstByte + delta; v < 0 || v > 0xff {
			return false
		}
	}

	s.first[0], s.last[0] = 0, 0
	for i := 1; i < len(s.deltas); i++ {
		lo := s.first[i-1] + 1
		hi := s.first[i-1] + s.gap
		target := byte(firstByte + s.deltas[i])

		s.first[i], s.last[i] = -1, -1
		for rel := lo; rel <= hi && offset+rel < len(s.buf); rel++ {
			if s.buf[offset+rel] != target {
				continue
			}
			if s.first[i] < 0 {
				s.first[i] = rel
			}
			s.last[i] = rel
		}
		if s.first[i] < 0 {
			return false
		}
	}
	return true
}

func (s *Scanner) build(offset int) model.Match {
	firstByte := int(s.buf[offset])
	m := model.Match{
		Offset: offset,
		Bytes:  make([]byte, len(s.deltas)),
		Spans:  make([]model.Span, len(s.deltas)),
	}
	for i, delta := range s.deltas {
		m.Bytes[i] = byte(firstByte + delta)
		m.Spans[i] = model.Span{First: s.first[i], Last: s.last[i]}
	}
	return m
}

// Collect returns up to limit matches, or all of them when limit <= 0.
// truncated reports whether the scan stopped at the limit.
func Collect(ctx context.Context, buf []byte, p model.Pattern, gap int, limit int) (res []model.Match, truncated bool, err error) {
	s, err := NewScanner(ctx, buf, p, gap)
	if err != nil {
		return nil, false, err
	}
	for s.Next() {
		if limit > 0 && len(res) == limit {
			return res, true, nil
		}
		res = append(res, s.Match())
	}
	return res, false, s.Err()
}
