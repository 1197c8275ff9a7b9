package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"traitgen/internal/driver"
	"traitgen/internal/ui"
)

// uiMode is the --ui value of expand and watch.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// progressView is how a run shows per-file progress.
type progressView uint8

const (
	viewSilent progressView = iota // --quiet
	viewPlain                      // summary lines on stderr
	viewTUI                        // live file list on stdout
)

// pickView combines --ui with the flags that rule the TUI out. The TUI draws
// on stdout, so it never runs when expansions are printed there.
func pickView(mode uiMode, quiet, toStdout, stdoutTTY bool) progressView {
	switch {
	case quiet:
		return viewSilent
	case toStdout, mode == uiModeOff:
		return viewPlain
	case mode == uiModeOn, stdoutTTY:
		return viewTUI
	}
	return viewPlain
}

// resolveView reads --ui, --quiet and, when the command has it, --stdout.
func resolveView(cmd *cobra.Command) (progressView, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return viewPlain, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(value)
	if err != nil {
		return viewPlain, err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return viewPlain, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	toStdout := false
	if cmd.Flags().Lookup("stdout") != nil {
		if toStdout, err = cmd.Flags().GetBool("stdout"); err != nil {
			return viewPlain, fmt.Errorf("failed to get stdout flag: %w", err)
		}
	}
	return pickView(mode, quiet, toStdout, isTerminal(os.Stdout)), nil
}

// runWithView runs work under the progress view. Only the TUI consumes
// driver events; the other views pass a nil sink.
func runWithView(view progressView, title string, files []string, out io.Writer, work func(driver.ProgressSink) error) error {
	if view != viewTUI {
		return work(nil)
	}
	display := make([]string, len(files))
	for i, f := range files {
		display[i] = filepath.ToSlash(filepath.Clean(f))
	}
	return ui.Run(title, display, out, work)
}

// printRebuildSummary writes the one-line result of a watch rebuild.
func printRebuildSummary(w io.Writer, view progressView, results []*driver.ExpandResult) {
	if view != viewPlain {
		return
	}
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	fmt.Fprintf(w, "rebuilt %d files, %d failed\n", len(results), failed)
}
