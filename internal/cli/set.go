package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/model"
)

var (
	setID        int64
	setSignature string
	setTitle     string
	setDate      string
	setLocation  string
	setSub       string
	setCondition string
	setCount     int
	setNotes     string
	setPath      string
)

var setCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Update record fields",
	Long: `Update one or more fields on an existing record.

Only the flags given are written. Changing the signature renames the scan
folder when it is still named after the old signature. A new --id must not
be taken by another record.

Examples:
  aktdoclix set 12 --title "Rechnung Brunnenbau 1900"
  aktdoclix set 12 --sig Gem.00013
  aktdoclix set 12 --condition "Leicht beschädigt" --location "Schrank A"
  aktdoclix set 12 --notes ""  # Clear a field`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	setCmd.Flags().Int64Var(&setID, "id", 0, "New record id")
	setCmd.Flags().StringVar(&setSignature, "sig", "", "Signature")
	setCmd.Flags().StringVar(&setTitle, "title", "", "Title")
	setCmd.Flags().StringVar(&setDate, "date", "", "Date range")
	setCmd.Flags().StringVar(&setLocation, "location", "", "Storage location")
	setCmd.Flags().StringVar(&setSub, "sub", "", "Subcategory")
	setCmd.Flags().StringVar(&setCondition, "condition", "", "Condition")
	setCmd.Flags().IntVar(&setCount, "count", 0, "Number of items")
	setCmd.Flags().StringVar(&setNotes, "notes", "", "Notes")
	setCmd.Flags().StringVar(&setPath, "path", "", "Scan folder path")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	id, ok := parseID(args[0])
	if !ok {
		return nil
	}

	patch := buildPatch(cmd)
	if patch.IsEmpty() {
		ExitValidationError("no fields to update (use --title, --sig, --date, ...)", nil)
		return nil
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	rec, err := s.Edit(id, patch)
	if err != nil {
		exitOnRecordError(id, err)
		return nil
	}

	if GetJSONOutput() {
		printJSON(rec)
	} else if !IsQuiet() {
		fmt.Printf("Updated %s (id %d)\n", rec.Signature, rec.ID)
	}
	return nil
}

// buildPatch collects the flags the user actually passed.
func buildPatch(cmd *cobra.Command) model.RecordPatch {
	var patch model.RecordPatch
	flags := cmd.Flags()
	if flags.Changed("id") {
		patch.ID = &setID
	}
	str := func(name string, v *string) *string {
		if flags.Changed(name) {
			return v
		}
		return nil
	}
	patch.Signature = str("sig", &setSignature)
	patch.Title = str("title", &setTitle)
	patch.DateRange = str("date", &setDate)
	patch.Location = str("location", &setLocation)
	patch.Subcategory = str("sub", &setSub)
	patch.Condition = str("condition", &setCondition)
	patch.Notes = str("notes", &setNotes)
	patch.Path = str("path", &setPath)
	if flags.Changed("count") {
		patch.Count = &setCount
	}
	return patch
}
