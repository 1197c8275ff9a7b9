package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"traitgen/internal/prof"
)

var activeProfile *prof.Session

// setupProfiling starts the profilers requested by persistent flags.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var (
		cfg prof.Config
		err error
	)
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	activeProfile, err = prof.Start(cfg)
	return err
}

func stopProfiling() {
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
}
