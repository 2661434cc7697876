package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRmCommand(t *testing.T) {
	t.Run("deletes the row and keeps the folder", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		seedRecords(t)

		output := runCLI(t, "rm", "1", "--yes")
		if ExitCode != 0 {
			t.Fatalf("expected exit code 0, got %d", ExitCode)
		}
		if !strings.Contains(output, "Deleted Gem.00001") {
			t.Errorf("unexpected output: %s", output)
		}
		if _, err := os.Stat(filepath.Join(tempDir, "Datenbank", "Gem.00001")); err != nil {
			t.Errorf("expected folder to be kept: %v", err)
		}

		runCLI(t, "show", "1")
		if ExitCode != 1 {
			t.Errorf("expected deleted record to be gone, exit code %d", ExitCode)
		}
	})

	t.Run("declined confirmation aborts", func(t *testing.T) {
		_, cleanup := setupTestEnv(t)
		defer cleanup()
		seedRecords(t)

		oldStdin := os.Stdin
		r, w, _ := os.Pipe()
		w.WriteString("n\n")
		w.Close()
		os.Stdin = r
		defer func() { os.Stdin = oldStdin }()

		runCLI(t, "rm", "1")
		if ExitCode != 1 {
			t.Errorf("expected exit code 1, got %d", ExitCode)
		}

		output := runCLI(t, "list", "--json")
		if !strings.Contains(output, "Gem.00001") {
			t.Error("expected record to survive")
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		_, cleanup := setupTestEnv(t)
		defer cleanup()

		runCLI(t, "rm", "5", "--yes")
		if ExitCode != 1 {
			t.Errorf("expected exit code 1, got %d", ExitCode)
		}
	})
}
