// Package textsplit splits page text into overlapping segments for
// embedding. It tries paragraph breaks first, then line breaks, then
// spaces, and finally individual characters, so segments end on the most
// natural boundary that still fits the size limit.
package textsplit

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagerag"
)

// DefaultSeparators lists split points from coarsest to finest.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Ensure Splitter implements pagerag.Chunker at compile time.
var _ pagerag.Chunker = (*Splitter)(nil)

// Splitter is a recursive character splitter. Lengths are measured in
// characters (runes), not bytes.
type Splitter struct {
	separators []string
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithSeparators overrides the separators tried, coarsest first. The empty
// separator is always appended so that no segment exceeds the size limit.
func WithSeparators(seps ...string) Option {
	return func(s *Splitter) {
		s.separators = seps
	}
}

// NewSplitter creates a Splitter using DefaultSeparators.
func NewSplitter(opts ...Option) *Splitter {
	s := &Splitter{separators: DefaultSeparators}
	for _, opt := range opts {
		opt(s)
	}
	if n := len(s.separators); n == 0 || s.separators[n-1] != "" {
		s.separators = append(append([]string{}, s.separators...), "")
	}
	return s
}

// Split returns segments of at most size characters. Consecutive segments
// repeat up to overlap characters of trailing pieces from the previous one.
func (s *Splitter) Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, pagerag.Errorf(pagerag.EINVALID, "chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, pagerag.Errorf(pagerag.EINVALID, "chunk overlap must be in [0, %d), got %d", size, overlap)
	}
	return s.split(text, s.separators, size, overlap), nil
}

func (s *Splitter) split(text string, separators []string, size, overlap int) []string {
	separator, rest := pickSeparator(text, separators)

	var segments, fitting []string
	for _, piece := range splitKeep(text, separator) {
		if utf8.RuneCountInString(piece) < size {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			segments = append(segments, merge(fitting, size, overlap)...)
			fitting = nil
		}
		if len(rest) == 0 {
			// Single characters; cannot be split further.
			segments = append(segments, piece)
			continue
		}
		segments = append(segments, s.split(piece, rest, size, overlap)...)
	}
	if len(fitting) > 0 {
		segments = append(segments, merge(fitting, size, overlap)...)
	}
	return segments
}

// pickSeparator returns the first separator present in text and the finer
// separators after it.
func pickSeparator(text string, separators []string) (string, []string) {
	for i, sep := range separators {
		if sep == "" {
			return "", nil
		}
		if strings.Contains(text, sep) {
			return sep, separators[i+1:]
		}
	}
	return "", nil
}

// splitKeep splits text on sep, keeping the separator at the start of each
// following piece. Empty pieces are dropped.
func splitKeep(text, sep string) []string {
	var pieces []string
	if sep == "" {
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}

	parts := strings.Split(text, sep)
	for i, p := range parts {
		if i > 0 {
			p = sep + p
		}
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// merge packs pieces, each shorter than size, into segments of at most size
// characters, carrying trailing pieces totalling at most overlap characters
// into the next segment.
func merge(pieces []string, size, overlap int) []string {
	var segments []string
	var current []string
	total := 0

	emit := func() {
		if seg := strings.TrimSpace(strings.Join(current, "")); seg != "" {
			segments = append(segments, seg)
		}
	}

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total+n > size && len(current) > 0 {
			emit()
			for total > overlap || (total+n > size && total > 0) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
	}
	emit()

	return segments
}
