package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/export"
)

var (
	exportFormat   string
	exportCategory string
	exportForce    bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export records to a file",
	Long: `Export records to CSV, JSON, or JSONL format.

CSV is written for spreadsheets: UTF-8 with a byte order mark, semicolon
separated, one row per record in store order. Without --format the format
follows the file extension. If no file is specified, writes to stdout.

Examples:
  aktdoclix export                              # Export all to stdout (CSV)
  aktdoclix export archiv.csv                   # Export all to CSV file
  aktdoclix export archiv.json                  # Export all to JSON file
  aktdoclix export --format jsonl -c Gemeinde   # One category to stdout`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatCSV, "Output format: csv, json, jsonl")
	exportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "Export only this category")
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "Overwrite existing file without warning")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	var outputFile string
	if len(args) > 0 {
		outputFile = args[0]
	}

	name := exportFormat
	if !cmd.Flags().Changed("format") && outputFile != "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(outputFile)), ".")
		if name != export.FormatJSON && name != export.FormatJSONL {
			name = export.FormatCSV
		}
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"format": name})
		return nil
	}

	if outputFile != "" && !exportForce {
		if _, err := os.Stat(outputFile); err == nil {
			ExitWithError(1, ErrCodeFilesystem,
				fmt.Sprintf("file '%s' already exists (use --force to overwrite)", outputFile),
				map[string]interface{}{"file": outputFile})
			return nil
		}
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	var writer io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			ExitWithError(1, ErrCodeFilesystem, fmt.Sprintf("failed to create output file: %v", err), nil)
			return nil
		}
		defer f.Close()
		writer = f
	}

	n, err := s.Export(writer, format, exportCategory)
	if err != nil {
		ExitOnError(err)
		return nil
	}

	if outputFile != "" && !IsQuiet() {
		fmt.Fprintf(os.Stderr, "Exported %d record(s) to %s\n", n, outputFile)
	}
	return nil
}
