package domain

// Correction is one flagged issue in an analyzed text. StartIndex and EndIndex
// are half-open code-point offsets into the analyzed text.
type Correction struct {
	ID          string         `json:"id"`
	Kind        CorrectionKind `json:"type"`
	Severity    Severity       `json:"severity"`
	Original    string         `json:"original"`
	Suggestion  string         `json:"suggestion"`
	Explanation string         `json:"explanation"`
	StartIndex  int            `json:"startIndex"`
	EndIndex    int            `json:"endIndex"`
}

// InBounds reports whether the correction's range is a non-empty range within a text of length n.
func (c Correction) InBounds(n int) bool {
	return c.StartIndex >= 0 && c.StartIndex < c.EndIndex && c.EndIndex <= n
}

// FeedbackResult is the output of one analysis.
type FeedbackResult struct {
	Original     string       `json:"original"`
	Corrections  []Correction `json:"corrections"`
	OverallScore int          `json:"overallScore"`
	Summary      string       `json:"summary"`
}

// SeverityCounts tallies corrections by severity.
type SeverityCounts struct {
	Errors      int
	Warnings    int
	Suggestions int
}

// CountSeverities tallies corrections by severity. Unknown severities are ignored.
func CountSeverities(corrections []Correction) SeverityCounts {
	var c SeverityCounts
	for _, corr := range corrections {
		switch corr.Severity {
		case SeverityError:
			c.Errors++
		case SeverityWarning:
			c.Warnings++
		case SeveritySuggestion:
			c.Suggestions++
		}
	}
	return c
}

// TextSegment is a contiguous slice of analyzed text, either plain or
// associated with one correction.
type TextSegment struct {
	Text        string      `json:"text"`
	Correction  *Correction `json:"correction,omitempty"`
	StartOffset int         `json:"startOffset"`
}

// Flagged reports whether the segment carries a correction.
func (s TextSegment) Flagged() bool { return s.Correction != nil }
