package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"traitgen/internal/driver"
	"traitgen/internal/source"
	"traitgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [directory...]",
	Short: "Expand inputs and re-expand them whenever they change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDelay, "quiet period before re-expanding")
	watchCmd.Flags().Int("jobs", 0, "max parallel workers (0=manifest or GOMAXPROCS)")
	watchCmd.Flags().Bool("cache", false, "reuse expansions from the on-disk cache")
	watchCmd.Flags().String("ui", "off", "progress UI for each rebuild (auto|on|off)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	delay, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
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

	w, err := watch.New(delay, watch.InputFilter(cfg.suffix))
	if err != nil {
		return err
	}
	defer w.Close()
	for _, root := range watchRoots(cfg.inputs) {
		if err := w.AddRecursive(root); err != nil {
			return err
		}
	}

	flags := expandFlags{quiet: quiet}
	rebuild := func(ctx context.Context, paths []string) error {
		files, err := driver.ListInputs(paths, cfg.suffix)
		if err != nil {
			return err
		}
		var (
			fs      *source.FileSet
			results []*driver.ExpandResult
		)
		err = runWithView(view, "rebuilding", files, cmd.OutOrStdout(), func(sink driver.ProgressSink) error {
			opts := cfg.opts
			opts.Progress = sink
			var runErr error
			fs, results, runErr = driver.ExpandPaths(ctx, paths, opts)
			return runErr
		})
		if err != nil {
			return err
		}
		reportResults(cmd, fs, results)
		printRebuildSummary(cmd.ErrOrStderr(), view, results)
		_, err = emitOutputs(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, flags, results)
		printTimings(cmd.ErrOrStderr(), cfg.opts.Timer)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rebuild(ctx, cfg.inputs); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %d roots, press Ctrl-C to stop\n", len(watchRoots(cfg.inputs)))
	}

	return w.Run(ctx, func(ctx context.Context, changes []watch.Change) error {
		paths := changedInputs(changes)
		if len(paths) == 0 {
			return nil
		}
		if err := rebuild(ctx, paths); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rebuild failed: %v\n", err)
			return err
		}
		return nil
	})
}

// watchRoots returns the directories to watch: directory inputs themselves
// and the parent directory of file inputs.
func watchRoots(inputs []string) []string {
	seen := make(map[string]struct{}, len(inputs))
	var roots []string
	for _, in := range inputs {
		root := in
		if info, err := os.Stat(in); err == nil && !info.IsDir() {
			root = filepath.Dir(in)
		}
		root = filepath.Clean(root)
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	return roots
}

// changedInputs keeps the paths that still exist; removed inputs have
// nothing to expand.
func changedInputs(changes []watch.Change) []string {
	var out []string
	for _, c := range changes {
		if c.Op == watch.OpRemoved {
			continue
		}
		if _, err := os.Stat(c.Path); err != nil {
			continue
		}
		out = append(out, c.Path)
	}
	return out
}
