package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a record",
	Long: `Delete a record from the archive.

The record's scan folder and its files stay on disk.

Examples:
  aktdoclix rm 12
  aktdoclix rm 12 --yes         # Skip confirmation`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	id, ok := parseID(args[0])
	if !ok {
		return nil
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	rec, err := s.Get(id)
	if err != nil {
		exitOnRecordError(id, err)
		return nil
	}

	if !rmYes && !IsQuiet() {
		fmt.Printf("Delete %s \"%s\"? [y/N]: ", rec.Signature, rec.Title)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(os.Stderr, "Aborted.")
			Exit(1)
			return nil
		}
	}

	if err := s.Delete(id); err != nil {
		exitOnRecordError(id, err)
		return nil
	}

	if GetJSONOutput() {
		printJSON(map[string]interface{}{
			"deleted":   id,
			"signature": rec.Signature,
			"folder":    rec.Path,
		})
	} else if !IsQuiet() {
		fmt.Printf("Deleted %s (id %d). Folder kept: %s\n", rec.Signature, id, rec.Path)
	}
	return nil
}
