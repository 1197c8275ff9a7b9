package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"traitgen/internal/diagfmt"
	"traitgen/internal/driver"
	"traitgen/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [file|directory...]",
	Short: "Expand trait aliases and write the generated Rust",
	Long: `Expand every .ta file into a generated .rs file and every trait_aliases!
invocation of a .rs file in place. Without arguments the inputs of traitgen.toml
are used, or the current directory when there is no manifest.`,
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().StringP("output", "o", "", "output file (single input only)")
	expandCmd.Flags().Bool("stdout", false, "print expansions to stdout instead of writing files")
	expandCmd.Flags().Bool("check", false, "fail if any generated file is missing or stale, write nothing")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers (0=manifest or GOMAXPROCS)")
	expandCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	expandCmd.Flags().Bool("cache", false, "reuse expansions from the on-disk cache")
}

// expandFlags are the expand-specific switches.
type expandFlags struct {
	output string
	stdout bool
	check  bool
	quiet  bool
}

func runExpand(cmd *cobra.Command, args []string) error {
	var (
		flags expandFlags
		err   error
	)
	if flags.output, err = cmd.Flags().GetString("output"); err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if flags.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	if flags.check, err = cmd.Flags().GetBool("check"); err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	if flags.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	view, err := resolveView(cmd)
	if err != nil {
		return err
	}

	cfg, err := newRunConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.openCache(cmd); err != nil {
		return err
	}

	files, err := driver.ListInputs(cfg.inputs, cfg.suffix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .ta or .rs inputs in %v", cfg.inputs)
	}
	if flags.output != "" && len(files) != 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(files))
	}

	var (
		fs      *source.FileSet
		results []*driver.ExpandResult
	)
	run := func(sink driver.ProgressSink) error {
		opts := cfg.opts
		opts.Progress = sink
		var runErr error
		fs, results, runErr = driver.ExpandPaths(cmd.Context(), cfg.inputs, opts)
		return runErr
	}
	if err := runWithView(view, "expanding", files, cmd.OutOrStdout(), run); err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	failed := reportResults(cmd, fs, results)
	stale, err := emitOutputs(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, flags, results)
	if err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), cfg.opts.Timer)

	if failed || stale {
		return exitCodeError{code: 1}
	}
	return nil
}

// reportResults prints diagnostics of every result to stderr and reports
// whether any file failed.
func reportResults(cmd *cobra.Command, fs *source.FileSet, results []*driver.ExpandResult) bool {
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		ShowNotes: true,
		ShowFixes: true,
	}
	failed := false
	for _, r := range results {
		if r.Failed() {
			failed = true
		}
		if r.Bag.Len() == 0 {
			continue
		}
		r.Bag.Sort()
		if r.Kind == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", r.Path)
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), r.Bag, fs, opts)
	}
	return failed
}

// emitOutputs writes, prints or checks the outputs of successful results.
// stale is true when --check found a file that would change.
func emitOutputs(stdout, stderr io.Writer, cfg *runConfig, flags expandFlags, results []*driver.ExpandResult) (stale bool, err error) {
	for _, r := range results {
		if r.Failed() || r.Output == nil {
			continue
		}
		if flags.stdout {
			if _, err := stdout.Write(driver.Render(r, cfg.header)); err != nil {
				return stale, err
			}
			continue
		}

		target := flags.output
		if target == "" {
			target = cfg.outputPath(r.Path)
		}

		if flags.check {
			current, readErr := os.ReadFile(target)
			if readErr != nil || !bytes.Equal(current, driver.Render(r, cfg.header)) {
				stale = true
				fmt.Fprintf(stderr, "stale: %s\n", target)
			}
			continue
		}

		changed, err := driver.WriteOutput(r, target, cfg.header)
		if err != nil {
			return stale, fmt.Errorf("failed to write %s: %w", target, err)
		}
		if !flags.quiet {
			status := "unchanged"
			if changed {
				status = "wrote"
			}
			if r.Cached {
				status += " (cached)"
			}
			fmt.Fprintf(stderr, "%s %s (%d aliases)\n", status, target, r.Items)
		}
	}
	return stale, nil
}
