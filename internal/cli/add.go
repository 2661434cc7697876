package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/archive"
	"github.com/user/aktdoclix/internal/model"
	"github.com/user/aktdoclix/internal/quickentry"
)

var (
	addSignature string
	addCategory  string
	addPrefix    string
	addDate      string
	addType      string
	addCount     int
	addSub       string
	addCondition string
	addLocation  string
	addNotes     string
	addPlace     string
	addPersons   string
	addQuick     int
	addCustom    string
	addNoExpand  bool
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new record",
	Long: `Add a new record and create its scan folder.

Without --sig the next free signature of the category is used. A category
that is not configured yet is added with --prefix, or with its first three
letters and a dot.

The title can come from a quick-entry button (--quick 1..3) or from the
free-text slot (--custom). A date of exactly four digits such as 1900 is
expanded to 1900-1901 unless --no-expand is given.

Examples:
  aktdoclix add "Rechnung Brunnenbau" -c Gemeinde --date 1900
  aktdoclix add --quick 2 -c Gemeinde --date 1912
  aktdoclix add "Protokolle" -c Vereine --prefix Ver. --type Sammelband --count 12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addSignature, "sig", "", "Signature (default: next free signature of the category)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category")
	addCmd.Flags().StringVar(&addPrefix, "prefix", "", "Signature prefix for a new category")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date range, e.g. 1900-1905")
	addCmd.Flags().StringVar(&addType, "type", model.DefaultType, "Item type")
	addCmd.Flags().IntVar(&addCount, "count", 0, "Number of items (collections only)")
	addCmd.Flags().StringVar(&addSub, "sub", "", "Subcategory (special categories only)")
	addCmd.Flags().StringVar(&addCondition, "condition", model.DefaultCondition, "Condition")
	addCmd.Flags().StringVar(&addLocation, "location", "", "Storage location")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Notes")
	addCmd.Flags().StringVar(&addPlace, "place", "", "Place, appended to the notes")
	addCmd.Flags().StringVar(&addPersons, "persons", "", "Persons, appended to the notes")
	addCmd.Flags().IntVar(&addQuick, "quick", 0, "Compose the title from quick-entry button 1-3")
	addCmd.Flags().StringVar(&addCustom, "custom", "", "Compose the title from a free-text phrase")
	addCmd.Flags().BoolVar(&addNoExpand, "no-expand", false, "Keep a four-digit date as typed")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	draft := archive.Draft{
		Signature:      addSignature,
		Category:       addCategory,
		CategoryPrefix: addPrefix,
		DateRange:      addDate,
		Type:           addType,
		Count:          addCount,
		Subcategory:    addSub,
		Condition:      addCondition,
		Location:       addLocation,
		Notes:          addNotes,
		Place:          addPlace,
		Persons:        addPersons,
	}
	if len(args) > 0 {
		draft.Title = args[0]
	}

	var entry *quickentry.Entry
	switch {
	case addQuick != 0:
		e, err := s.Compose(addQuick - 1)
		if err != nil {
			ExitValidationError(fmt.Sprintf("invalid quick-entry button %d (must be 1-%d)", addQuick, model.ButtonCount), nil)
			return nil
		}
		entry = &e
	case cmd.Flags().Changed("custom"):
		e, err := s.ComposeCustom(addCustom)
		if err != nil {
			ExitOnError(err)
			return nil
		}
		entry = &e
	}
	if entry != nil {
		if draft.Title == "" {
			draft.Title = entry.Title
		}
		if !cmd.Flags().Changed("type") {
			draft.Type = entry.Type
		}
	}

	if !addNoExpand {
		draft.DateRange = model.ExpandYear(draft.DateRange)
	}

	if strings.TrimSpace(draft.Signature) == "" && strings.TrimSpace(draft.Title) != "" {
		sig, err := s.NextSignature(draft.Category, true)
		if err != nil {
			ExitOnError(err)
			return nil
		}
		draft.Signature = sig
	}

	rec, err := s.Create(draft)
	if err != nil {
		ExitOnError(err)
		return nil
	}

	if GetJSONOutput() {
		printJSON(rec)
	} else if IsQuiet() {
		fmt.Println(rec.ID)
	} else {
		fmt.Printf("Created %s (id %d)\n", rec.Signature, rec.ID)
		fmt.Printf("Folder: %s\n", rec.Path)
	}
	return nil
}
