package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"traitgen/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a traitgen.toml manifest",
	Long: `Initialize a traitgen project by writing a default traitgen.toml. If
[path] is omitted the current directory is used; a missing directory is
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	path, err := project.Init(target)
	if err != nil {
		return err
	}

	rel := path
	if r, relErr := filepath.Rel(wd, path); relErr == nil {
		rel = r
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized traitgen project: %s\n", rel)
	return nil
}
