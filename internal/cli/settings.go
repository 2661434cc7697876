package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/model"
)

var settingsLink int

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage vocabularies, categories and quick-entry buttons",
	Long: `Manage the settings file.

The settings hold the vocabularies offered during entry (storage locations,
types, conditions), the categories with their signature prefixes, the three
quick-entry buttons and the free-text history.

Vocabulary kinds: lagerorte, types, conditions, kategorien

Examples:
  aktdoclix settings show
  aktdoclix settings button 2 kopie "Kopie zur" --link 1
  aktdoclix settings category Vereine Ver.
  aktdoclix settings rename lagerorte "Regal 1" "Regal 1 (Keller)"
  aktdoclix settings remove types Mappe
  aktdoclix settings custom Protokollbuch`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsButtonCmd = &cobra.Command{
	Use:   "button <1-3> <label> [prefix]",
	Short: "Configure a quick-entry button",
	Long: `Configure a quick-entry button.

The label is stored upper-cased. --link makes the button borrow the label of
an earlier button, so "Kopie zur" linked to a "RECHNUNG" button composes
"Kopie zur Rechnung".`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSettingsButton,
}

var settingsCategoryCmd = &cobra.Command{
	Use:   "category <name> [prefix]",
	Short: "Add a category or change its prefix",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSettingsCategory,
}

var settingsRenameCmd = &cobra.Command{
	Use:   "rename <kind> <old> <new>",
	Short: "Rename a vocabulary entry",
	Args:  cobra.ExactArgs(3),
	RunE:  runSettingsRename,
}

var settingsRemoveCmd = &cobra.Command{
	Use:   "remove <kind> <value>",
	Short: "Remove a vocabulary entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsRemove,
}

var settingsCustomCmd = &cobra.Command{
	Use:   "custom <phrase...>",
	Short: "Add a phrase to the free-text history",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSettingsCustom,
}

func init() {
	settingsButtonCmd.Flags().IntVar(&settingsLink, "link", model.LinkNone, "Borrow the label of button 1 or 2 (0 = independent)")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsButtonCmd)
	settingsCmd.AddCommand(settingsCategoryCmd)
	settingsCmd.AddCommand(settingsRenameCmd)
	settingsCmd.AddCommand(settingsRemoveCmd)
	settingsCmd.AddCommand(settingsCustomCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	settings := s.Settings()
	if GetJSONOutput() {
		printJSON(settings)
		return nil
	}

	fmt.Println("# Settings")
	fmt.Println()
	fmt.Println("## Kategorien")
	fmt.Println()
	for pair := settings.Categories.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Printf("- %s: %s\n", pair.Key, pair.Value)
	}
	fmt.Println()
	printVocabulary("Lagerorte", settings.Locations)
	printVocabulary("Typen", settings.Types)
	printVocabulary("Zustände", settings.Conditions)

	fmt.Println("## Schnelleingabe")
	fmt.Println()
	for i, b := range settings.Buttons {
		link := ""
		if b.LinkTo != model.LinkNone {
			link = fmt.Sprintf(" (link: %d)", b.LinkTo)
		}
		fmt.Printf("%d. %s: %q%s\n", i+1, b.Label, b.Prefix, link)
	}
	fmt.Printf("Freitext: %s\n", s.CurrentCustom())
	return nil
}

func printVocabulary(title string, values []string) {
	fmt.Printf("## %s\n\n", title)
	if len(values) == 0 {
		fmt.Println("(none)")
	}
	for _, v := range values {
		fmt.Printf("- %s\n", v)
	}
	fmt.Println()
}

func runSettingsButton(cmd *cobra.Command, args []string) error {
	slot, err := strconv.Atoi(args[0])
	if err != nil || slot < 1 || slot > model.ButtonCount {
		ExitValidationError(fmt.Sprintf("invalid button '%s' (must be 1-%d)", args[0], model.ButtonCount), nil)
		return nil
	}
	var prefix string
	if len(args) > 2 {
		prefix = args[2]
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	if err := s.ConfigureButton(slot-1, args[1], prefix, settingsLink); err != nil {
		ExitOnError(err)
		return nil
	}

	b := s.Settings().Buttons[slot-1]
	if GetJSONOutput() {
		printJSON(b)
	} else if !IsQuiet() {
		fmt.Printf("Button %d: %s\n", slot, b.Label)
	}
	return nil
}

func runSettingsCategory(cmd *cobra.Command, args []string) error {
	var prefix string
	if len(args) > 1 {
		prefix = args[1]
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	prefix, err := s.SetCategory(args[0], prefix)
	if err != nil {
		ExitOnError(err)
		return nil
	}

	if GetJSONOutput() {
		printJSON(map[string]string{"category": args[0], "prefix": prefix})
	} else if !IsQuiet() {
		fmt.Printf("Category %s: %s\n", args[0], prefix)
	}
	return nil
}

func runSettingsRename(cmd *cobra.Command, args []string) error {
	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	if err := s.RenameVocabulary(args[0], args[1], args[2]); err != nil {
		ExitOnError(err)
		return nil
	}
	if !IsQuiet() && !GetJSONOutput() {
		fmt.Printf("Renamed %s: %s -> %s\n", args[0], args[1], strings.TrimSpace(args[2]))
	}
	return nil
}

func runSettingsRemove(cmd *cobra.Command, args []string) error {
	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	if err := s.RemoveVocabulary(args[0], args[1]); err != nil {
		ExitOnError(err)
		return nil
	}
	if !IsQuiet() && !GetJSONOutput() {
		fmt.Printf("Removed %s from %s\n", args[1], args[0])
	}
	return nil
}

func runSettingsCustom(cmd *cobra.Command, args []string) error {
	phrase := strings.TrimSpace(strings.Join(args, " "))
	if phrase == "" {
		ExitValidationError("phrase must not be empty", nil)
		return nil
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	if err := s.RememberCustom(phrase); err != nil {
		ExitOnError(err)
		return nil
	}
	if !IsQuiet() && !GetJSONOutput() {
		fmt.Printf("Remembered: %s\n", phrase)
	}
	return nil
}
