// Package highlight partitions analyzed text into plain and flagged segments
// for inline display of corrections.
package highlight

import (
	"slices"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// Segments splits text into an ordered, gap-filled sequence of segments.
// Offsets are code-point offsets.
//
// Corrections are applied in ascending StartIndex order; ties keep the order
// in which they were received. A correction that is empty, out of bounds, or
// starts inside an already flagged span is skipped, so concatenating the
// returned segment texts always reproduces text.
func Segments(text string, corrections []domain.Correction) []domain.TextSegment {
	segments, _ := split(text, corrections)
	return segments
}

// Skipped returns the corrections Segments leaves out, in input order.
func Skipped(text string, corrections []domain.Correction) []domain.Correction {
	_, skipped := split(text, corrections)
	return skipped
}

func split(text string, corrections []domain.Correction) ([]domain.TextSegment, []domain.Correction) {
	runes := []rune(text)
	if len(corrections) == 0 {
		return []domain.TextSegment{{Text: text}}, nil
	}

	// Sort positions, not corrections, so skipped ones can be reported in input order.
	order := make([]int, len(corrections))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return corrections[a].StartIndex - corrections[b].StartIndex
	})

	used := make([]bool, len(corrections))
	segments := make([]domain.TextSegment, 0, 2*len(corrections)+1)
	cursor := 0
	for _, i := range order {
		c := corrections[i]
		if !c.InBounds(len(runes)) || c.StartIndex < cursor {
			continue
		}
		if cursor < c.StartIndex {
			segments = append(segments, domain.TextSegment{
				Text:        string(runes[cursor:c.StartIndex]),
				StartOffset: cursor,
			})
		}
		segments = append(segments, domain.TextSegment{
			Text:        string(runes[c.StartIndex:c.EndIndex]),
			Correction:  &c,
			StartOffset: c.StartIndex,
		})
		cursor = c.EndIndex
		used[i] = true
	}

	if cursor < len(runes) || len(segments) == 0 {
		segments = append(segments, domain.TextSegment{
			Text:        string(runes[cursor:]),
			StartOffset: cursor,
		})
	}

	var skipped []domain.Correction
	for i, c := range corrections {
		if !used[i] {
			skipped = append(skipped, c)
		}
	}
	return segments, skipped
}
