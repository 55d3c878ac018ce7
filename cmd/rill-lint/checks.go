package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/config"
	"rill/internal/lint"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List known lint checks",
	Long:  "Checks lists every registered check with its code and whether the current manifest enables it.",
	Args:  cobra.NoArgs,
	RunE:  runChecks,
}

func runChecks(cmd *cobra.Command, _ []string) error {
	cfg, manifestPath, err := config.Discover(".")
	if err != nil {
		return err
	}
	if manifestPath != "" {
		fmt.Fprintf(os.Stdout, "manifest: %s\n", manifestPath)
	}

	for _, c := range lint.All() {
		meta := c.Meta()
		state := "enabled"
		if !cfg.Lint.Enabled(meta.Name) {
			state = "disabled"
		}
		fmt.Fprintf(os.Stdout, "%-20s %s  %-8s  %s\n", meta.Name, meta.Code.ID(), state, meta.Doc)
	}
	return nil
}
