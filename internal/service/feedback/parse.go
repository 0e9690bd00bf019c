package feedback

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// rawCorrection is one element of the model's JSON array before validation.
// Pointer fields distinguish missing keys from zero values.
type rawCorrection struct {
	Type        string   `json:"type"`
	Kind        string   `json:"kind"`
	Severity    string   `json:"severity"`
	Original    string   `json:"original"`
	Suggestion  *string  `json:"suggestion"`
	Explanation *string  `json:"explanation"`
	StartIndex  *float64 `json:"startIndex"`
	EndIndex    *float64 `json:"endIndex"`
}

// parseResult is the outcome of reading one model response.
type parseResult struct {
	Corrections []domain.Correction
	// Malformed is set when the response held no JSON array at all.
	Malformed bool
	// Dropped counts array elements rejected by validation.
	Dropped int
}

// parseCorrections reads the model response as untrusted input. It never
// fails: anything unusable degrades to fewer (or zero) corrections.
func parseCorrections(raw, text string) parseResult {
	body, ok := extractArray(raw)
	if !ok {
		return parseResult{Corrections: []domain.Correction{}, Malformed: true}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return parseResult{Corrections: []domain.Correction{}, Malformed: true}
	}

	runes := []rune(text)
	res := parseResult{Corrections: make([]domain.Correction, 0, len(elems))}

	for _, elem := range elems {
		c, ok := validateElement(elem, runes)
		if !ok {
			res.Dropped++
			continue
		}
		c.ID = uuid.NewString()
		res.Corrections = append(res.Corrections, c)
	}

	return res
}

// extractArray returns the JSON array held in the response. Markdown code
// fences are stripped; when the response is not valid JSON the span from the
// first '[' to the last ']' is tried. A valid non-array JSON value is rejected.
func extractArray(raw string) ([]byte, bool) {
	s := stripFences(strings.TrimSpace(raw))

	if json.Valid([]byte(s)) {
		if strings.HasPrefix(s, "[") {
			return []byte(s), true
		}
		return nil, false
	}

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end <= start {
		return nil, false
	}
	candidate := []byte(s[start : end+1])
	if !json.Valid(candidate) {
		return nil, false
	}
	return bytes.TrimSpace(candidate), true
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line, including any language tag.
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func validateElement(elem json.RawMessage, text []rune) (domain.Correction, bool) {
	var rc rawCorrection
	if err := json.Unmarshal(elem, &rc); err != nil {
		return domain.Correction{}, false
	}

	kindStr := rc.Type
	if kindStr == "" {
		kindStr = rc.Kind
	}
	kind := domain.CorrectionKind(strings.ToLower(strings.TrimSpace(kindStr)))
	if !kind.IsValid() {
		return domain.Correction{}, false
	}

	sev := domain.Severity(strings.ToLower(strings.TrimSpace(rc.Severity)))
	if !sev.IsValid() {
		return domain.Correction{}, false
	}

	if rc.Original == "" || rc.Suggestion == nil || rc.Explanation == nil {
		return domain.Correction{}, false
	}

	start, ok := wholeNumber(rc.StartIndex)
	if !ok {
		return domain.Correction{}, false
	}
	end, ok := wholeNumber(rc.EndIndex)
	if !ok {
		return domain.Correction{}, false
	}

	c := domain.Correction{
		Kind:        kind,
		Severity:    sev,
		Original:    rc.Original,
		Suggestion:  *rc.Suggestion,
		Explanation: strings.TrimSpace(*rc.Explanation),
		StartIndex:  start,
		EndIndex:    end,
	}
	if !c.InBounds(len(text)) {
		return domain.Correction{}, false
	}

	reanchor(&c, text)
	return c, true
}

func wholeNumber(f *float64) (int, bool) {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) || *f != math.Trunc(*f) {
		return 0, false
	}
	if *f < math.MinInt32 || *f > math.MaxInt32 {
		return 0, false
	}
	return int(*f), true
}

// reanchor moves the correction onto the occurrence of Original closest to
// the reported start when the reported range does not hold Original. If
// Original does not occur in the text the reported range is kept.
func reanchor(c *domain.Correction, text []rune) {
	if string(text[c.StartIndex:c.EndIndex]) == c.Original {
		return
	}

	needle := []rune(c.Original)
	best, bestDist := -1, 0
	for i := 0; i+len(needle) <= len(text); i++ {
		if !slices.Equal(text[i:i+len(needle)], needle) {
			continue
		}
		dist := i - c.StartIndex
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best == -1 {
		return
	}
	c.StartIndex = best
	c.EndIndex = best + len(needle)
}
