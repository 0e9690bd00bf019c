package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

func newHealthCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the model backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, logger, err := d.setup(cmd)
			if err != nil {
				return err
			}
			backend, err := d.newBackend(cfg.LLM, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			st := backend.Checker.Check(ctx)

			if jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), healthJSON(st)); err != nil {
					return err
				}
			} else {
				printHealth(cmd, st)
			}
			if !st.Healthy {
				return fmt.Errorf("%s is not available: %s", st.Service, st.Err)
			}
			return nil
		},
	}
}

func healthJSON(st provider.HealthStatus) map[string]any {
	status := "healthy"
	if !st.Healthy {
		status = "unhealthy"
	}
	out := map[string]any{"status": status, "service": st.Service}
	if len(st.Models) > 0 {
		out["models"] = st.Models
	}
	if st.Err != "" {
		out["error"] = st.Err
	}
	return out
}

func printHealth(cmd *cobra.Command, st provider.HealthStatus) {
	w := cmd.OutOrStdout()
	p := newPalette(cmd)
	if !st.Healthy {
		fmt.Fprintf(w, "%s: %s\n", st.Service, p.bad("unhealthy"))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", st.Service, p.good("healthy"))
	if len(st.Models) > 0 {
		fmt.Fprintf(w, "models: %s\n", strings.Join(st.Models, ", "))
	}
}
