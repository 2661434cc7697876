package cli

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var backupForce bool

var backupCmd = &cobra.Command{
	Use:   "backup [file]",
	Short: "Create a backup of the archive",
	Long: `Create a compressed backup of the archive including:
- The record database
- The settings file
- All scan folders with their files

The backup is saved as a .tar.gz file. If no filename is specified,
a default name with timestamp is used.

Examples:
  aktdoclix backup                     # Create backup with auto-generated name
  aktdoclix backup archiv.tar.gz       # Create backup with specific name
  aktdoclix backup --force             # Overwrite existing backup file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().BoolVarP(&backupForce, "force", "f", false, "Overwrite existing file without warning")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		ExitWithError(1, ErrCodeConfig, fmt.Sprintf("invalid configuration: %v", err), nil)
		return nil
	}

	outputFile := ""
	if len(args) > 0 {
		outputFile = args[0]
	}
	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("aktdoclix-backup-%s.tar.gz", timestamp)
	}

	if !backupForce {
		if _, err := os.Stat(outputFile); err == nil {
			ExitWithError(1, ErrCodeFilesystem,
				fmt.Sprintf("file '%s' already exists (use --force to overwrite)", outputFile),
				map[string]interface{}{"file": outputFile})
			return nil
		}
	}

	f, err := os.Create(outputFile)
	if err != nil {
		ExitWithError(1, ErrCodeFilesystem, fmt.Sprintf("failed to create backup file: %v", err), nil)
		return nil
	}

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)

	filesAdded := 0
	addErr := func() error {
		for _, path := range []string{cfg.DBPath(), cfg.SettingsPath()} {
			added, err := addFileToTar(tw, path, filepath.Base(path))
			if err != nil {
				return err
			}
			if added {
				filesAdded++
			}
		}
		n, err := addTreeToTar(tw, cfg.FolderPath(), filepath.Base(cfg.FolderPath()))
		filesAdded += n
		return err
	}()

	if err := tw.Close(); err != nil && addErr == nil {
		addErr = err
	}
	if err := gw.Close(); err != nil && addErr == nil {
		addErr = err
	}
	if err := f.Close(); err != nil && addErr == nil {
		addErr = err
	}
	if addErr != nil {
		os.Remove(outputFile)
		ExitWithError(1, ErrCodeFilesystem, fmt.Sprintf("backup failed: %v", addErr), nil)
		return nil
	}

	var size int64
	if info, err := os.Stat(outputFile); err == nil {
		size = info.Size()
	}

	if GetJSONOutput() {
		printJSON(map[string]interface{}{
			"backup_file": outputFile,
			"home":        cfg.Home,
			"files":       filesAdded,
			"size_bytes":  size,
		})
	} else if !IsQuiet() {
		fmt.Printf("Backup created: %s\n", outputFile)
		fmt.Printf("Archive: %s\n", cfg.Home)
		fmt.Printf("Files: %d\n", filesAdded)
		fmt.Printf("Size: %s\n", formatSize(size))
	}
	return nil
}

// addFileToTar stores the file at path under name. A missing file is skipped.
func addFileToTar(tw *tar.Writer, path, name string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := writeTarEntry(tw, path, name, info); err != nil {
		return false, err
	}
	return true, nil
}

// addTreeToTar stores every file below root under the name prefix and
// returns the number of files added. A missing root is skipped.
func addTreeToTar(tw *tar.Writer, root, prefix string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(filepath.Join(prefix, rel))
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			header, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			header.Name = name + "/"
			return tw.WriteHeader(header)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if err := writeTarEntry(tw, path, name, info); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func writeTarEntry(tw *tar.Writer, path, name string, info fs.FileInfo) error {
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(name)

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(tw, src)
	return err
}
