package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/highlight"
)

type segmentsOutput struct {
	Segments []domain.TextSegment `json:"segments"`
	Skipped  []domain.Correction  `json:"skipped,omitempty"`
}

func newSegmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Split text into plain and flagged segments",
		Long: `Segments reads a JSON array of corrections (as returned by analyze --json)
and prints the text partitioned into plain and flagged segments. Use "-"
to read the corrections from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _ := cmd.Flags().GetString("text")
			path, _ := cmd.Flags().GetString("corrections")
			jsonOut, _ := cmd.Flags().GetBool("json")

			corrections, err := readCorrections(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			out := segmentsOutput{
				Segments: highlight.Segments(text, corrections),
				Skipped:  highlight.Skipped(text, corrections),
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printSegments(cmd.OutOrStdout(), out, newPalette(cmd))
			return nil
		},
	}

	cmd.Flags().String("text", "", "Text the corrections refer to (required)")
	cmd.Flags().String("corrections", "", "JSON file with corrections, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("corrections")

	return cmd
}

// readCorrections accepts either a bare array or an analyze result object.
func readCorrections(stdin io.Reader, path string) ([]domain.Correction, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read corrections: %w", err)
	}

	var list []domain.Correction
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var result domain.FeedbackResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse corrections: %w", err)
	}
	return result.Corrections, nil
}

func printSegments(w io.Writer, out segmentsOutput, p palette) {
	fmt.Fprintln(w, renderSegments(out.Segments, p))
	fmt.Fprintln(w)
	for _, s := range out.Segments {
		if s.Correction == nil {
			fmt.Fprintf(w, "%4d  %q\n", s.StartOffset, s.Text)
			continue
		}
		fmt.Fprintf(w, "%4d  %q  %s %s -> %q\n", s.StartOffset, s.Text, p.severity(s.Correction.Severity), s.Correction.Kind, s.Correction.Suggestion)
	}
	if n := len(out.Skipped); n > 0 {
		fmt.Fprintf(w, "\nskipped %d overlapping or out-of-range correction(s)\n", n)
	}
}
