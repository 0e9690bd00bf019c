package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/highlight"
	"github.com/heartmarshall/langcoach-backend/internal/observe"
	"github.com/heartmarshall/langcoach-backend/internal/service/feedback"
)

func newAnalyzeCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze learner text and print corrections",
		Long: `Analyze sends the text to the model backend and prints an overall score,
a summary, the text with flagged spans highlighted and the list of
corrections. Without arguments the text is read from stdin.`,
		Example: `  coach analyze "Yesterday I goed to the store"
  echo "Je suis allé au magasin hier" | coach analyze --lang fr --level beginner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			lang, _ := cmd.Flags().GetString("lang")
			level, _ := cmd.Flags().GetString("level")
			hint, _ := cmd.Flags().GetString("context")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, logger, err := d.setup(cmd)
			if err != nil {
				return err
			}
			backend, err := d.newBackend(cfg.LLM, logger)
			if err != nil {
				return err
			}

			svc := feedback.NewService(logger, backend.Completer, nil, nil, observe.Nop(), feedback.ConfigFrom(cfg.Feedback, cfg.LLM))
			result, err := svc.Analyze(cmd.Context(), feedback.AnalyzeInput{
				Text:           text,
				TargetLanguage: domain.Language(strings.ToLower(lang)),
				UserLevel:      domain.UserLevel(strings.ToLower(level)),
				Context:        hint,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result, newPalette(cmd))
			return nil
		},
	}

	cmd.Flags().StringP("lang", "l", "", "Target language code (en, fr, es)")
	cmd.Flags().String("level", "", "Learner level (beginner, intermediate, advanced)")
	cmd.Flags().StringP("context", "c", "", "Conversation context shown to the model")

	return cmd
}

// inputText joins the positional arguments or, when there are none, reads
// all of r.
func inputText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no text given: pass it as an argument or on stdin")
	}
	return text, nil
}

func printResult(w io.Writer, result *domain.FeedbackResult, p palette) {
	fmt.Fprintf(w, "Score: %s\n", p.score(result.OverallScore))
	fmt.Fprintln(w, result.Summary)
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderSegments(highlight.Segments(result.Original, result.Corrections), p))

	if len(result.Corrections) == 0 {
		return
	}
	fmt.Fprintln(w)
	for i, c := range result.Corrections {
		fmt.Fprintf(w, "%d. %s %s: %q -> %q\n", i+1, p.severity(c.Severity), c.Kind, c.Original, c.Suggestion)
		if c.Explanation != "" {
			fmt.Fprintf(w, "   %s\n", c.Explanation)
		}
	}
}
