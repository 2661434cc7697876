package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var humanCmd = &cobra.Command{
	Use:   "human",
	Short: "Show essential commands",
	Long: `Display a curated list of the commands used day to day.

For the full command list, use: aktdoclix --help`,
	Args: cobra.NoArgs,
	Run:  runHuman,
}

func init() {
	rootCmd.AddCommand(humanCmd)
}

func runHuman(cmd *cobra.Command, args []string) {
	fmt.Print(`aktdoclix - Essential Commands
For all commands: aktdoclix --help

Cataloguing:
  add <title> -c <category>   Add a record with the next free signature
  add --quick 1..3            Take the title from a quick-entry button
  add --custom <phrase>       Take the title from a free-text phrase
  next-sig <category>         Show the signature the next record gets
  set <id> --title ...        Update record fields
  rm <id>                     Delete a record (its folder stays)

Finding:
  list [term]                 List or search records, newest first
  list --live                 Search as you type
  show <id>                   Show record details and related records

Scans:
  files <id>                  List the scans of a record
  open <id>                   Open the scan folder in the file manager
  watch                       Report folders gaining or losing scans

Settings:
  settings show               Show vocabularies, categories and buttons
  settings button <n> <label> Configure a quick-entry button
  settings category <name>    Add a category with its prefix

Safekeeping:
  export archiv.csv           Export for spreadsheets
  backup                      Pack database, settings and scans

Quick Examples:
  aktdoclix add "Rechnung Brunnenbau" -c Gemeinde --date 1900
  aktdoclix list Rechnung
  aktdoclix show 1
`)
}
