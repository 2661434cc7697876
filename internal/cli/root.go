// Package cli provides the command-line interface for aktdoclix.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/aktdoclix/internal/archive"
	"github.com/user/aktdoclix/internal/config"
	"github.com/user/aktdoclix/internal/logging"
)

// Global flags
var (
	jsonOutput bool
	homeDir    string
	quiet      bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aktdoclix",
	Short: "A record keeper for physical archives",
	Long: `Aktdoclix catalogues the files ("Akten") of a small physical archive.

Features:
  - Signatures per category: the next free signature is proposed automatically
  - One scan folder per record, renamed along with its signature
  - Quick-entry titles from three configurable buttons and a free-text slot
  - Related records of the same category within five years
  - CSV export for spreadsheets`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "Archive directory (default: $AKTDOCLIX_HOME or current directory)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug output")
}

// ExitCode is used to communicate exit codes for testing
var ExitCode int

// ExitFunc is the function called to exit the program
// Can be overridden for testing
var ExitFunc = os.Exit

// Exit sets the exit code and calls the exit function
func Exit(code int) {
	ExitCode = code
	ExitFunc(code)
}

// GetJSONOutput returns whether JSON output is enabled
func GetJSONOutput() bool {
	return jsonOutput
}

// IsQuiet returns whether quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// loadConfig resolves the configuration and applies the global log flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(homeDir)
	if err != nil {
		return nil, err
	}
	switch {
	case verbose:
		cfg.Log.Level = "debug"
	case quiet:
		cfg.Log.Level = "error"
	}
	return cfg, nil
}

// sessionOptions are applied to every session the commands open.
var sessionOptions []archive.Option

// openSession opens the archive in the configured home directory.
// On failure it reports the error and exits; the caller must return.
func openSession() (*archive.Session, bool) {
	cfg, err := loadConfig()
	if err != nil {
		ExitWithError(1, ErrCodeConfig, fmt.Sprintf("invalid configuration: %v", err), nil)
		return nil, false
	}

	logger, err := logging.New(cfg.Env, cfg.Log)
	if err != nil {
		logger = zap.NewNop()
	}

	s, err := archive.Open(cfg, logger, sessionOptions...)
	if err != nil {
		ExitOnError(err)
		return nil, false
	}
	return s, true
}
