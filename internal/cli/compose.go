package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/model"
	"github.com/user/aktdoclix/internal/quickentry"
)

var composeCmd = &cobra.Command{
	Use:   "compose <1-3|custom> [phrase...]",
	Short: "Show the title a quick-entry button produces",
	Long: `Compose a title the way the quick-entry buttons do.

Buttons 1 to 3 combine their prefix with the label of the button they link
to. "custom" composes a title from a free-text phrase, falling back to the
last phrase used, and remembers new phrases.

Examples:
  aktdoclix compose 2
  aktdoclix compose custom Kassenbuch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	var (
		entry quickentry.Entry
		err   error
	)
	if strings.EqualFold(args[0], "custom") {
		entry, err = s.ComposeCustom(strings.Join(args[1:], " "))
	} else {
		slot, convErr := strconv.Atoi(args[0])
		if convErr != nil || slot < 1 || slot > model.ButtonCount {
			ExitValidationError(fmt.Sprintf("invalid button '%s' (must be 1-%d or custom)", args[0], model.ButtonCount), nil)
			return nil
		}
		entry, err = s.Compose(slot - 1)
	}
	if err != nil {
		ExitOnError(err)
		return nil
	}

	if GetJSONOutput() {
		printJSON(entry)
		return nil
	}
	fmt.Println(entry.Title)
	if !IsQuiet() {
		fmt.Printf("Type: %s\n", entry.Type)
	}
	return nil
}
