package main

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// palette renders severities and scores. Without color, flagged spans are
// bracketed instead.
type palette struct {
	enabled bool
	err     *color.Color
	warn    *color.Color
	suggest *color.Color
	ok      *color.Color
}

func newPalette(cmd *cobra.Command) palette {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return buildPalette(!noColor && !color.NoColor)
}

func buildPalette(enabled bool) palette {
	p := palette{
		enabled: enabled,
		err:     color.New(color.FgRed, color.Bold, color.Underline),
		warn:    color.New(color.FgYellow, color.Underline),
		suggest: color.New(color.FgCyan, color.Underline),
		ok:      color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.suggest, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) forSeverity(s domain.Severity) *color.Color {
	switch s {
	case domain.SeverityError:
		return p.err
	case domain.SeverityWarning:
		return p.warn
	default:
		return p.suggest
	}
}

func (p palette) severity(s domain.Severity) string {
	return p.forSeverity(s).Sprint("[" + string(s) + "]")
}

func (p palette) flagged(s domain.Severity, text string) string {
	if !p.enabled {
		return "[" + text + "]"
	}
	return p.forSeverity(s).Sprint(text)
}

func (p palette) score(n int) string {
	s := strconv.Itoa(n) + "/100"
	switch {
	case n >= 80:
		return p.ok.Sprint(s)
	case n >= 50:
		return p.warn.Sprint(s)
	default:
		return p.err.Sprint(s)
	}
}

func (p palette) good(s string) string { return p.ok.Sprint(s) }
func (p palette) bad(s string) string  { return p.err.Sprint(s) }

// renderSegments joins segments back into the text with flagged spans
// highlighted.
func renderSegments(segments []domain.TextSegment, p palette) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Correction == nil {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(p.flagged(s.Correction.Severity, s.Text))
	}
	return b.String()
}
