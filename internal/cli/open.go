package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/model"
)

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a record's scan folder in the file manager",
	Long: `Open the scan folder of a record in the system file manager.

A record whose folder is missing only produces a warning.

Examples:
  aktdoclix open 12`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	id, ok := parseID(args[0])
	if !ok {
		return nil
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	if err := s.OpenFolder(id); err != nil {
		if errors.Is(err, model.ErrPathMissing) {
			Warn(ErrCodePathMissing, fmt.Sprintf("record %d has no scan folder on disk", id))
			return nil
		}
		exitOnRecordError(id, err)
		return nil
	}

	if GetJSONOutput() {
		printJSON(map[string]interface{}{"opened": id})
	}
	return nil
}
