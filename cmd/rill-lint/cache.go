package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk diagnostics cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached lint result",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("rill")
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	fmt.Fprintln(os.Stdout, "Cache cleared.")
	return nil
}
