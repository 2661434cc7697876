package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var nextSigLive bool

var nextSigCmd = &cobra.Command{
	Use:   "next-sig [category]",
	Short: "Propose the next free signature of a category",
	Long: `Propose the next free signature for a category.

The highest signature with the category's prefix is incremented, keeping
its digit width. A category without a prefix uses "Div.".

With --live the category is treated as text being typed, so an unknown name
derives its prefix from its first three letters.

Examples:
  aktdoclix next-sig Gemeinde
  aktdoclix next-sig Vereine --live`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNextSig,
}

func init() {
	nextSigCmd.Flags().BoolVar(&nextSigLive, "live", false, "Derive a prefix for unknown categories")
	rootCmd.AddCommand(nextSigCmd)
}

func runNextSig(cmd *cobra.Command, args []string) error {
	var category string
	if len(args) > 0 {
		category = args[0]
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	sig, err := s.NextSignature(category, nextSigLive)
	if err != nil {
		ExitOnError(err)
		return nil
	}

	if GetJSONOutput() {
		printJSON(map[string]string{"category": category, "signature": sig})
		return nil
	}
	fmt.Println(sig)
	return nil
}
