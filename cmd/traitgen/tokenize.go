package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"traitgen/internal/diagfmt"
	"traitgen/internal/driver"
	"traitgen/internal/format"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Tokenize a .ta or .rs file",
	Long:  `Tokenize breaks a source file into the tokens the alias parser sees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|listing)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	case "listing":
		err = writeListing(cmd, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitCodeError{code: 1}
	}
	return nil
}

func writeListing(cmd *cobra.Command, result *driver.TokenizeResult) error {
	return format.WriteTokenListing(cmd.OutOrStdout(), result.FileSet, result.Tokens)
}
