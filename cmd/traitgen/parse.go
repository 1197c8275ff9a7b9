package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"traitgen/internal/ast"
	"traitgen/internal/diagfmt"
	"traitgen/internal/driver"
	"traitgen/internal/format"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file",
	Short: "Parse and check trait alias declarations",
	Long: `Parse reads every alias declaration in a .ta file (or in each
trait_aliases! invocation of a .rs file), checks reserved identifiers and
prints one line per alias`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("canonical", false, "print declarations in canonical `trait Name = Bounds;` form")
	parseCmd.Flags().Bool("verify", false, "check that the canonical form of a .ta file parses back to the same aliases")
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	canonical, err := cmd.Flags().GetBool("canonical")
	if err != nil {
		return fmt.Errorf("failed to get canonical flag: %w", err)
	}
	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return fmt.Errorf("failed to get verify flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
			ShowFixes: true,
		})
	}

	out := cmd.OutOrStdout()
	for _, coll := range result.Collections {
		if canonical {
			if _, err := out.Write(format.Aliases(coll.Items, format.Options{})); err != nil {
				return err
			}
			continue
		}
		for _, item := range coll.Items {
			fmt.Fprintln(out, aliasSummary(item))
		}
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet") //nolint:errcheck // флаг зарегистрирован в main
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d aliases in %d invocations\n", result.Items(), len(result.Collections))
	}
	if result.Bag.HasErrors() {
		return exitCodeError{code: 1}
	}
	if verify && result.Kind == driver.InputAliases {
		ok, msg := format.CheckRoundTrip(result.File)
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
		if !ok {
			return exitCodeError{code: 1}
		}
	}
	return nil
}

// aliasSummary renders "Name<G> = bound + bound (where clauses, attrs)".
func aliasSummary(item *ast.TraitAlias) string {
	var sb strings.Builder
	sb.WriteString(item.Ident.Name)
	if item.Generics != nil && len(item.Generics.Params) > 0 {
		sb.WriteString(format.Node(item.Generics))
	}
	sb.WriteString(" =")
	for i, b := range item.Bounds {
		if i > 0 {
			sb.WriteString(" +")
		}
		sb.WriteString(" ")
		sb.WriteString(format.Node(b))
	}
	var extras []string
	if item.Generics != nil && item.Generics.Where != nil && len(item.Generics.Where.Predicates) > 0 {
		extras = append(extras, fmt.Sprintf("%d where predicates", len(item.Generics.Where.Predicates)))
	}
	if len(item.Attrs) > 0 {
		extras = append(extras, fmt.Sprintf("%d attributes", len(item.Attrs)))
	}
	if len(extras) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(extras, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}
