package highlight

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

func joined(segments []domain.TextSegment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestSegments_NoCorrections(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "Hello world.", "  spaced  "} {
		got := Segments(text, nil)
		require.Len(t, got, 1)
		assert.Equal(t, text, got[0].Text)
		assert.Equal(t, 0, got[0].StartOffset)
		assert.Nil(t, got[0].Correction)
	}
}

func TestSegments_SchoolScenario(t *testing.T) {
	t.Parallel()

	text := "I go to school yesterday."
	corr := domain.Correction{
		ID:         "c1",
		Kind:       domain.CorrectionKindGrammar,
		Severity:   domain.SeverityError,
		Original:   "go",
		Suggestion: "went",
		StartIndex: 2,
		EndIndex:   4,
	}

	got := Segments(text, []domain.Correction{corr})

	require.Len(t, got, 3)
	assert.Equal(t, domain.TextSegment{Text: "I ", StartOffset: 0}, got[0])
	assert.Equal(t, "go", got[1].Text)
	assert.Equal(t, 2, got[1].StartOffset)
	require.NotNil(t, got[1].Correction)
	assert.Equal(t, "went", got[1].Correction.Suggestion)
	assert.Equal(t, domain.TextSegment{Text: " to school yesterday.", StartOffset: 4}, got[2])
}

func TestSegments_SortsByStart(t *testing.T) {
	t.Parallel()

	text := "abcdefghij"
	got := Segments(text, []domain.Correction{
		{ID: "late", StartIndex: 6, EndIndex: 8},
		{ID: "early", StartIndex: 0, EndIndex: 2},
	})

	require.Len(t, got, 4)
	assert.Equal(t, "early", got[0].Correction.ID)
	assert.Equal(t, "cdef", got[1].Text)
	assert.Equal(t, "late", got[2].Correction.ID)
	assert.Equal(t, "ij", got[3].Text)
	assert.Equal(t, 8, got[3].StartOffset)
}

func TestSegments_AdjacentCorrections(t *testing.T) {
	t.Parallel()

	got := Segments("abcd", []domain.Correction{
		{ID: "a", StartIndex: 0, EndIndex: 2},
		{ID: "b", StartIndex: 2, EndIndex: 4},
	})

	require.Len(t, got, 2)
	assert.True(t, got[0].Flagged())
	assert.True(t, got[1].Flagged())
	assert.Equal(t, "abcd", joined(got))
}

func TestSegments_OverlapKeepsEarliest(t *testing.T) {
	t.Parallel()

	text := "She don't likes apples."
	corrections := []domain.Correction{
		{ID: "inner", StartIndex: 10, EndIndex: 15},
		{ID: "outer", StartIndex: 4, EndIndex: 15},
	}

	got := Segments(text, corrections)

	assert.Equal(t, text, joined(got))
	var flagged []string
	for _, s := range got {
		if s.Flagged() {
			flagged = append(flagged, s.Correction.ID)
		}
	}
	assert.Equal(t, []string{"outer"}, flagged)

	skipped := Skipped(text, corrections)
	require.Len(t, skipped, 1)
	assert.Equal(t, "inner", skipped[0].ID)
}

func TestSegments_TieKeepsFirstReceived(t *testing.T) {
	t.Parallel()

	got := Segments("hello world", []domain.Correction{
		{ID: "first", StartIndex: 0, EndIndex: 5},
		{ID: "second", StartIndex: 0, EndIndex: 3},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Correction.ID)
	assert.Equal(t, " world", got[1].Text)
}

func TestSegments_DropsOutOfBounds(t *testing.T) {
	t.Parallel()

	text := "short"
	got := Segments(text, []domain.Correction{
		{ID: "past-end", StartIndex: 3, EndIndex: 40},
		{ID: "negative", StartIndex: -2, EndIndex: 1},
		{ID: "empty", StartIndex: 2, EndIndex: 2},
	})

	require.Len(t, got, 1)
	assert.Equal(t, text, got[0].Text)
	assert.Len(t, Skipped(text, []domain.Correction{{StartIndex: 3, EndIndex: 40}}), 1)
}

func TestSegments_CodePointOffsets(t *testing.T) {
	t.Parallel()

	text := "Je suis allé à Paris"
	// "allé" spans code points 8..12.
	got := Segments(text, []domain.Correction{{ID: "c", StartIndex: 8, EndIndex: 12}})

	require.Len(t, got, 3)
	assert.Equal(t, "allé", got[1].Text)
	assert.Equal(t, 12, got[2].StartOffset)
	assert.Equal(t, " à Paris", got[2].Text)
}

func TestSegments_RoundTripProperty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []rune("abc défg hïj, klm. ñop")

	for iter := 0; iter < 500; iter++ {
		n := rng.IntN(60)
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = alphabet[rng.IntN(len(alphabet))]
		}
		text := string(runes)

		// Arbitrary, possibly overlapping or invalid ranges.
		var corrections []domain.Correction
		for k := rng.IntN(6); k > 0; k-- {
			start := rng.IntN(n+4) - 2
			end := start + rng.IntN(8) - 1
			corrections = append(corrections, domain.Correction{StartIndex: start, EndIndex: end})
		}

		segments := Segments(text, corrections)
		require.Equal(t, text, joined(segments), "iteration %d", iter)

		offset := 0
		for _, s := range segments {
			require.Equal(t, offset, s.StartOffset, "iteration %d", iter)
			offset += len([]rune(s.Text))
		}
	}
}
