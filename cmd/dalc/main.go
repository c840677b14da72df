package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dalc/internal/builtins"
	"dalc/internal/symbols"
	"dalc/internal/types"
	"dalc/internal/version"
)

// errReported signals a failure that was already shown to the user; main
// exits with status 1 without printing it again.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:           "dalc",
	Short:         "DAL compiler front end",
	Long:          `dalc checks DAL compilation units: it registers their functions and resolves every call against built-in and user declarations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupColor(cmd); err != nil {
			return err
		}
		stopProfile, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfile)
		closeTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, closeTrace)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanups()
	},
}

// cleanups run in reverse order once the command finishes.
var cleanups []func()

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(builtinsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per unit (0 = default)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel units (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command. Any error exits with status 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		runCleanups()
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode %q (expected: auto|on|off)", mode)
	}
	return nil
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// loadBuiltins builds the type universe and the built-in function set.
func loadBuiltins() (*types.Universe, *symbols.BuiltinSet, error) {
	u := types.NewUniverse()
	set, err := builtins.Load(u)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load builtins: %w", err)
	}
	return u, set, nil
}
