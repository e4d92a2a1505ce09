package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joshuapare/wika/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	noColor     bool
	printTokens bool
	encoding    string
	segmentSize int
)

var rootCmd = &cobra.Command{
	Use:   "wika [flags] path...",
	Short: "Tokenize wika source files",
	Long: `wika reads each source file, tokenizes it and reports every lexical
error it finds with the offending line highlighted. The exit status is
non-zero if any source failed to load or had errors.`,
	Example: `  wika main.wk
  wika --print-tokens lib/*.wk
  wika --json --encoding utf-16le legacy.wk`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Enabled: verbose,
			Output:  cmd.ErrOrStderr(),
			Level:   slog.LevelDebug,
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			printError(cmd.ErrOrStderr(), "no source paths\n")
			return cmd.Help()
		}
		return runLex(args, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress rendered diagnostics; only the exit status reports errors")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Output diagnostics (and tokens) as JSON")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable highlighted diagnostics")
	rootCmd.Flags().BoolVar(&printTokens, "print-tokens", false, "Print every token")
	rootCmd.Flags().
		StringVar(&encoding, "encoding", "", "Source encoding (utf-8, utf-16le, utf-16be, windows-1252); default sniffs the BOM")
	rootCmd.Flags().
		IntVar(&segmentSize, "segment-size", 0, "Identifier arena segment size in bytes (0 = default)")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
}

// normalizeFlagName accepts underscores for dashes, so the older spelling
// --print_tokens keeps working.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printError prints an error message
func printError(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(w io.Writer, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(w, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
