package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"traitgen/internal/diag"
	"traitgen/internal/diagfmt"
	"traitgen/internal/driver"
	"traitgen/internal/source"
	"traitgen/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file|directory...]",
	Short: "Report diagnostics for alias files without writing output",
	Long: `Run the full expansion of .ta and .rs files (or every such file within a
directory) and report problems. Nothing is written to disk.`,
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|golden|json|sarif)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("preview", false, "show lines before and after applying fixes")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// diagOutput bundles the rendering choices of the diag command.
type diagOutput struct {
	format    string
	color     bool
	pathMode  diagfmt.PathMode
	withNotes bool
	showFixes bool
	preview   bool
	args      []string
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	cfg, err := newRunConfig(cmd, args)
	if err != nil {
		return err
	}

	fs, results, err := driver.ExpandPaths(cmd.Context(), cfg.inputs, cfg.opts)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	out := diagOutput{
		format:    formatName,
		color:     useColor(cmd, os.Stdout),
		pathMode:  diagfmt.PathModeAuto,
		withNotes: withNotes,
		showFixes: suggest || preview,
		preview:   preview,
		args:      os.Args[1:],
	}
	if fullPath {
		out.pathMode = diagfmt.PathModeAbsolute
	}
	if err := out.render(cmd.OutOrStdout(), fs, results); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), cfg.opts.Timer)

	if anyFailed(results) {
		return exitCodeError{code: 1}
	}
	return nil
}

func anyFailed(results []*driver.ExpandResult) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}

func (o diagOutput) render(w io.Writer, fs *source.FileSet, results []*driver.ExpandResult) error {
	switch o.format {
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:       o.color,
			Context:     2,
			PathMode:    o.pathMode,
			ShowNotes:   o.withNotes,
			ShowFixes:   o.showFixes,
			ShowPreview: o.preview,
		}
		first := true
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(w)
			}
			first = false
			r.Bag.Sort()
			fmt.Fprintf(w, "== %s ==\n", o.displayPath(fs, r))
			diagfmt.Pretty(w, r.Bag, fs, opts)
		}
	case "short":
		for _, r := range results {
			r.Bag.Sort()
			if r.Kind == 0 {
				// файл не загрузился: у диагностики нет места, подставляем путь
				for _, d := range r.Bag.Items() {
					fmt.Fprintf(w, "%s: error %s: %s\n", o.displayPath(fs, r), d.Code.ID(), d.Message)
				}
				continue
			}
			diagfmt.Short(w, r.Bag, fs, o.pathMode)
		}
	case "golden":
		all := make([]diag.Diagnostic, 0)
		for _, r := range results {
			if r.Kind == 0 {
				for _, d := range r.Bag.Items() {
					fmt.Fprintf(w, "error %s %s %s\n", d.Code.ID(), o.displayPath(fs, r), d.Message)
				}
				continue
			}
			all = append(all, r.Bag.Items()...)
		}
		if text := diag.FormatGoldenDiagnostics(all, fs, o.withNotes); text != "" {
			fmt.Fprintln(w, text)
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			IncludeNotes:     o.withNotes,
			IncludeFixes:     o.showFixes,
			IncludePreviews:  o.preview,
		}
		for _, r := range results {
			r.Bag.Sort()
			output[o.displayPath(fs, r)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts)
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	case "sarif":
		all := diag.NewBag(driver.DefaultMaxDiagnostics)
		for _, r := range results {
			all.Merge(r.Bag)
		}
		all.Sort()
		all.Dedup()
		return diagfmt.Sarif(w, all, fs, diagfmt.SarifRunMeta{
			ToolName:       appName,
			ToolVersion:    version.Version,
			InvocationArgs: o.args,
			PathMode:       o.pathMode,
		})
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
	return nil
}

func (o diagOutput) displayPath(fs *source.FileSet, r *driver.ExpandResult) string {
	mode := "auto"
	if o.pathMode == diagfmt.PathModeAbsolute {
		mode = "absolute"
	}
	if r.Kind != 0 {
		return fs.Get(r.FileID).FormatPath(mode, fs.BaseDir())
	}
	if mode == "absolute" {
		if abs, err := source.AbsolutePath(r.Path); err == nil {
			return abs
		}
	}
	return r.Path
}
