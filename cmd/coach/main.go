// Command coach analyzes learner text from the terminal using the same
// feedback pipeline as the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langcoach-backend/internal/app"
	"github.com/heartmarshall/langcoach-backend/internal/config"
)

// deps are the collaborators the commands construct lazily, so that
// commands needing no model backend never load one.
type deps struct {
	loadConfig func() (*config.Config, error)
	newBackend func(cfg config.LLMConfig, logger *slog.Logger) (*app.ModelBackend, error)
}

func defaultDeps() *deps {
	return &deps{loadConfig: config.Load, newBackend: app.NewModelBackend}
}

// setup loads configuration and a stderr logger. Without --verbose only
// warnings and errors are logged.
func (d *deps) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := d.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(defaultDeps()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(d *deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coach",
		Short: "Language coach - grammar and style feedback for learners",
		Long: `coach sends learner text to the configured model backend and prints
scored, position-indexed corrections.

Configuration is read from CONFIG_PATH or ./config.yaml and LLM_* variables.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newAnalyzeCmd(d),
		newSegmentsCmd(),
		newHealthCmd(d),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return writeJSON(cmd.OutOrStdout(), app.Build())
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "coach %s\n", app.BuildVersion())
			return err
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
