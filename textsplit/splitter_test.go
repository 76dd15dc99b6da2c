package textsplit_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/pagerag"
	"github.com/fwojciec/pagerag/textsplit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("splits words with overlap", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split("aaaa bbbb cccc dddd", 10, 5)

		require.NoError(t, err)
		assert.Equal(t, []string{"aaaa bbbb", "bbbb cccc", "cccc dddd"}, segments)
	})

	t.Run("splits words without overlap", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split("aaaa bbbb cccc dddd", 10, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"aaaa bbbb", "cccc dddd"}, segments)
	})

	t.Run("prefers paragraph boundaries", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split("First paragraph.\n\nSecond paragraph.", 20, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"First paragraph.", "Second paragraph."}, segments)
	})

	t.Run("falls back to characters for long words", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split("abcdefghij", 4, 1)

		require.NoError(t, err)
		assert.Equal(t, []string{"abcd", "defg", "ghij"}, segments)
	})

	t.Run("measures length in characters", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split("héllo wörld", 6, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"héllo", "wörld"}, segments)
	})

	t.Run("keeps short text whole", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split("  Python is a programming language.  ", 1000, 200)

		require.NoError(t, err)
		assert.Equal(t, []string{"Python is a programming language."}, segments)
	})

	t.Run("returns no segments for empty text", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split("", 100, 10)

		require.NoError(t, err)
		assert.Empty(t, segments)
	})

	t.Run("returns no segments for whitespace", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		segments, err := s.Split(" \n\n \n ", 100, 10)

		require.NoError(t, err)
		assert.Empty(t, segments)
	})

	t.Run("rejects overlap not smaller than size", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		_, err := s.Split("text", 10, 10)

		require.Error(t, err)
		assert.Equal(t, pagerag.EINVALID, pagerag.ErrorCode(err))
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter()

		_, err := s.Split("text", 0, 0)

		require.Error(t, err)
		assert.Equal(t, pagerag.EINVALID, pagerag.ErrorCode(err))
	})

	t.Run("custom separators still bound segment size", func(t *testing.T) {
		t.Parallel()

		s := textsplit.NewSplitter(textsplit.WithSeparators("|"))

		segments, err := s.Split("ab|cdefgh", 3, 0)

		require.NoError(t, err)
		for _, seg := range segments {
			assert.LessOrEqual(t, utf8.RuneCountInString(seg), 3)
		}
		assert.Equal(t, "ab", segments[0])
	})
}

func TestSplitter_Split_Bounds(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40) +
		"\n\n" + strings.Repeat("Pack my box with five dozen liquor jugs.\n", 30)

	for _, tc := range []struct{ size, overlap int }{
		{50, 0}, {50, 10}, {100, 20}, {200, 199}, {1000, 200},
	} {
		s := textsplit.NewSplitter()

		segments, err := s.Split(text, tc.size, tc.overlap)

		require.NoError(t, err)
		require.NotEmpty(t, segments)
		for _, seg := range segments {
			assert.LessOrEqual(t, utf8.RuneCountInString(seg), tc.size, "size=%d overlap=%d", tc.size, tc.overlap)
			assert.NotEmpty(t, seg)
		}
	}
}

func TestSplitter_Split_OverlapSharesText(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("word ", 100)
	s := textsplit.NewSplitter()

	segments, err := s.Split(text, 50, 20)

	require.NoError(t, err)
	require.Greater(t, len(segments), 1)
	for i := 1; i < len(segments); i++ {
		prev := segments[i-1]
		next := segments[i]
		// Each segment starts with a word repeated from the end of the previous one.
		firstWord := strings.Fields(next)[0]
		assert.True(t, strings.HasSuffix(prev, firstWord) || strings.Contains(prev[len(prev)/2:], firstWord))
	}
}
