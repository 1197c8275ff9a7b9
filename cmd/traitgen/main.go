package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"traitgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "traitgen",
	Short: "Expand Rust trait alias declarations",
	Long: `traitgen expands trait_aliases! declarations into a trait with a blanket
implementation, either from bare .ta alias files or in place inside .rs files.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
	PersistentPostRun: postRun,
}

// exitCodeError завершает процесс с кодом без лишнего текста:
// диагностики уже напечатаны.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval for long runs (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main runs the root command. Any error exits with status 1.
func main() {
	defer dumpTraceOnPanic()
	err := rootCmd.Execute()
	stopProfiling()
	closeTracing()
	if err == nil {
		return
	}
	var exitErr exitCodeError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		exitErr.code = 1
	}
	os.Exit(exitErr.code)
}

func preRun(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	if err := setupTracing(cmd); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

func postRun(*cobra.Command, []string) {
	stopProfiling()
	closeTracing()
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // дескрипторы малы
}

// useColor decides colouring for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color") //nolint:errcheck // флаг зарегистрирован в main
	return mode == "on" || (mode == "auto" && isTerminal(f))
}
