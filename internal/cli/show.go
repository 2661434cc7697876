package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/model"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single record",
	Long: `Display detailed information about a single record.

Shows:
- Signature, title, date range and all other fields
- Whether the scan folder holds scans
- Related records: same category, start year within five years

Examples:
  aktdoclix show 12
  aktdoclix show 12 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showOutput is the --json shape of show.
type showOutput struct {
	model.Record
	Level   model.ConditionLevel `json:"level"`
	Scan    model.ScanStatus     `json:"scan"`
	Related []model.Record       `json:"related"`
}

func runShow(cmd *cobra.Command, args []string) error {
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

	related := relatedOrWarn(s, id)
	status := s.ScanStatus(rec.Path)

	if GetJSONOutput() {
		printJSON(showOutput{
			Record:  *rec,
			Level:   model.LevelOf(rec.Condition),
			Scan:    status,
			Related: related,
		})
		return nil
	}

	fmt.Printf("# %s %s\n", rec.Signature, rec.Title)
	fmt.Println()
	fmt.Printf("**ID**: %d\n", rec.ID)
	fmt.Printf("**Scans**: %s %s\n", status.Symbol(), status)
	fmt.Println()

	fmt.Println("## Fields")
	fmt.Println()
	printField("Zeitraum", rec.DateRange)
	printField("Typ", rec.Type)
	if rec.IsCollection() {
		printField("Anzahl", fmt.Sprintf("%d", rec.Count))
	}
	printField("Kategorie", rec.Category)
	printField("Unterkategorie", rec.Subcategory)
	printField("Zustand", model.DisplayCondition(rec.Condition))
	printField("Lagerort", rec.Location)
	printField("Pfad", rec.Path)
	if rec.Notes != "" {
		fmt.Println()
		fmt.Println("## Notizen")
		fmt.Println()
		fmt.Println(rec.Notes)
	}
	fmt.Println()

	fmt.Println("## Related")
	fmt.Println()
	if len(related) == 0 {
		fmt.Println("No related records.")
		return nil
	}
	fmt.Println("| ID | Signatur | Titel | Zeitraum |")
	fmt.Println("|----|----------|-------|----------|")
	for _, r := range related {
		fmt.Printf("| %d | %s | %s | %s |\n", r.ID, r.Signature, r.Title, r.DateRange)
	}
	return nil
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("- **%s**: %s\n", name, value)
}

type relatedFinder interface {
	Related(id int64) ([]model.Record, error)
}

// relatedOrWarn is non-fatal: on a storage error the record is shown without
// relations after a warning.
func relatedOrWarn(f relatedFinder, id int64) []model.Record {
	related, err := f.Related(id)
	if err != nil {
		Warn(ErrCodeStorage, fmt.Sprintf("related records unavailable: %v", err))
		return []model.Record{}
	}
	return related
}
