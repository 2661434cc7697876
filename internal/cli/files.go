package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/model"
)

var filesHash bool

var filesCmd = &cobra.Command{
	Use:   "files <id>",
	Short: "List the scans of a record",
	Long: `List the files in a record's scan folder.

Shows name, size and modification time. Hidden files are skipped.

Examples:
  aktdoclix files 12
  aktdoclix files 12 --hash
  aktdoclix files 12 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().BoolVar(&filesHash, "hash", false, "Include SHA-256 hashes")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	id, ok := parseID(args[0])
	if !ok {
		return nil
	}

	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	rec, files, err := s.Files(id, filesHash)
	if err != nil {
		if errors.Is(err, model.ErrPathMissing) {
			ExitWithError(1, ErrCodePathMissing,
				fmt.Sprintf("scan folder of record %d does not exist", id),
				map[string]interface{}{"id": id, "path": rec.Path})
			return nil
		}
		exitOnRecordError(id, err)
		return nil
	}

	if GetJSONOutput() {
		if files == nil {
			files = []model.ScanFile{}
		}
		printJSON(files)
		return nil
	}

	if len(files) == 0 {
		fmt.Printf("No scans for %s (%s)\n", rec.Signature, rec.Path)
		return nil
	}

	fmt.Printf("# Scans for %s\n\n", rec.Signature)
	if filesHash {
		fmt.Println("| Name | Size | Modified | Hash |")
		fmt.Println("|------|------|----------|------|")
	} else {
		fmt.Println("| Name | Size | Modified |")
		fmt.Println("|------|------|----------|")
	}
	for _, f := range files {
		name, size := f.Name, formatSize(f.Size)
		if f.Dir {
			name, size = f.Name+"/", "-"
		}
		modified := f.Modified.Format("2006-01-02 15:04")
		if filesHash {
			hash := f.Hash
			if len(hash) > 12 {
				hash = hash[:12]
			}
			fmt.Printf("| %s | %s | %s | %s |\n", name, size, modified, hash)
		} else {
			fmt.Printf("| %s | %s | %s |\n", name, size, modified)
		}
	}
	return nil
}

// formatSize formats bytes as human-readable size
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
