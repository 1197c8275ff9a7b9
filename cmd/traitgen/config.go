package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"traitgen/internal/diag"
	"traitgen/internal/driver"
	"traitgen/internal/observ"
	"traitgen/internal/project"
)

const appName = "traitgen"

// runConfig is what a generating command needs: inputs, output naming and
// driver options, merged from traitgen.toml and flags.
type runConfig struct {
	manifest *project.Manifest // nil без traitgen.toml
	inputs   []string
	suffix   string
	header   string
	opts     driver.Options
}

// loadManifest finds traitgen.toml above the working directory.
func loadManifest() (*project.Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, ok, err := project.Load(wd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", diag.ProjInvalidManifest.ID(), err)
	}
	if !ok {
		return nil, nil
	}
	return m, nil
}

func newRunConfig(cmd *cobra.Command, args []string) (*runConfig, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	m, err := loadManifest()
	if err != nil {
		return nil, err
	}

	cfg := &runConfig{
		manifest: m,
		suffix:   project.DefaultSuffix,
		header:   project.DefaultHeader,
	}
	cfg.opts.MaxDiagnostics = maxDiagnostics
	if m != nil {
		cfg.suffix = m.Config.Generate.Suffix
		cfg.header = m.Config.Generate.Header
		cfg.opts.Jobs = m.Jobs()
		cfg.opts.BaseDir = m.Root
	}
	cfg.opts.SkipSuffix = cfg.suffix

	switch {
	case len(args) > 0:
		for _, a := range args {
			if m != nil {
				// пути манифеста абсолютные, аргументы приводим к ним
				if abs, absErr := filepath.Abs(a); absErr == nil {
					a = abs
				}
			}
			cfg.inputs = append(cfg.inputs, a)
		}
	case m != nil:
		cfg.inputs = m.InputPaths()
	default:
		cfg.inputs = []string{"."}
	}

	if cmd.Flags().Lookup("jobs") != nil {
		jobs, jobsErr := cmd.Flags().GetInt("jobs")
		if jobsErr != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", jobsErr)
		}
		if jobs > 0 {
			cfg.opts.Jobs = jobs
		}
	}

	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		cfg.opts.Timer = observ.NewTimer()
	}
	return cfg, nil
}

// openCache opens the disk cache when the manifest or --cache asks for it.
func (c *runConfig) openCache(cmd *cobra.Command) error {
	enabled := c.manifest != nil && c.manifest.Config.Cache.Enabled
	dir := ""
	if c.manifest != nil {
		dir = c.manifest.CacheDir()
	}
	if f := cmd.Flags().Lookup("cache"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("cache")
		if err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
		enabled = v
	}
	if !enabled {
		return nil
	}
	cache, err := driver.OpenDiskCache(dir, appName)
	if err != nil {
		return fmt.Errorf("%s: %w", diag.IOCacheError.ID(), err)
	}
	c.opts.Cache = cache
	return nil
}

// outputPath maps an expanded input to the file it is written to.
func (c *runConfig) outputPath(input string) string {
	if c.manifest != nil {
		return c.manifest.OutputPath(input)
	}
	return project.OutputPath(input, "", "", c.suffix)
}
