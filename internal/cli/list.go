package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/archive"
	"github.com/user/aktdoclix/internal/model"
	"github.com/user/aktdoclix/internal/watch"
)

var listLive bool

// listInput is where --live reads search terms from.
var listInput io.Reader = os.Stdin

var listCmd = &cobra.Command{
	Use:   "list [term...]",
	Short: "List and search records",
	Long: `List records, newest first.

A search term matches signature, title, date range, type, condition,
storage location, subcategory and notes. Case is ignored in all fields
but the date range.

The Scan column shows whether the record's folder holds scans:
  ✅ scanned   ⚪ empty   ⚠️ missing   ❓ unknown

With --live, search terms are read line by line from standard input and
the list is printed again once typing pauses.

Examples:
  aktdoclix list
  aktdoclix list Rechnung
  aktdoclix list "Schrank A" --json
  aktdoclix list --live`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listLive, "live", false, "Read search terms from stdin and search as you type")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	if listLive {
		return runLiveList(s)
	}

	listings, err := s.Search(strings.Join(args, " "))
	if err != nil {
		ExitOnError(err)
		return nil
	}
	printListings(listings)
	return nil
}

// runLiveList searches once per pause in the input, using the last line seen.
func runLiveList(s *archive.Session) error {
	var mu sync.Mutex
	search := func(term string) {
		mu.Lock()
		defer mu.Unlock()
		listings, err := s.Search(term)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		printListings(listings)
	}

	d := watch.NewDebouncer(s.Config().SearchDebounce)
	defer d.Stop()

	scanner := bufio.NewScanner(listInput)
	for scanner.Scan() {
		term := scanner.Text()
		d.Trigger(func() { search(term) })
	}
	d.Flush()
	return scanner.Err()
}

func printListings(listings []model.Listing) {
	if GetJSONOutput() {
		printJSON(listings)
		return
	}

	if len(listings) == 0 {
		fmt.Println("No records found.")
		return
	}

	const (
		idWidth    = 6
		sigWidth   = 14
		titleWidth = 40
		dateWidth  = 12
		catWidth   = 14
		condWidth  = 18
	)

	header := []string{
		fmt.Sprintf("%-*s", idWidth, "ID"),
		fmt.Sprintf("%-*s", sigWidth, "Signatur"),
		fmt.Sprintf("%-*s", titleWidth, "Titel"),
		fmt.Sprintf("%-*s", dateWidth, "Zeitraum"),
		fmt.Sprintf("%-*s", catWidth, "Kategorie"),
		fmt.Sprintf("%-*s", condWidth, "Zustand"),
		"Scan",
	}
	separator := make([]string, len(header))
	for i, h := range header {
		separator[i] = strings.Repeat("-", utf8.RuneCountInString(h))
	}
	fmt.Println(strings.Join(header, "  "))
	fmt.Println(strings.Join(separator, "  "))

	for _, l := range listings {
		row := []string{
			fmt.Sprintf("%-*d", idWidth, l.ID),
			pad(l.Signature, sigWidth),
			pad(l.Title, titleWidth),
			pad(l.DateRange, dateWidth),
			pad(l.Category, catWidth),
			pad(model.DisplayCondition(l.Condition), condWidth),
			l.Scan.Symbol(),
		}
		fmt.Println(strings.Join(row, "  "))
	}

	fmt.Printf("\nTotal: %d record(s)\n", len(listings))
}

// pad truncates or pads s to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}
