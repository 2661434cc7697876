package cli

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestBackupCommand(t *testing.T) {
	t.Run("packs database, settings and scans", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		seedRecords(t)
		runCLI(t, "settings", "category", "Vereine", "Ver.")

		scan := filepath.Join(tempDir, "Datenbank", "Gem.00001", "seite1.jpg")
		if err := os.WriteFile(scan, []byte("jpg"), 0644); err != nil {
			t.Fatal(err)
		}

		outFile := filepath.Join(t.TempDir(), "archiv.tar.gz")
		runCLI(t, "backup", outFile)
		if ExitCode != 0 {
			t.Fatalf("expected exit code 0, got %d", ExitCode)
		}

		names := readTarNames(t, outFile)
		for _, want := range []string{
			"Aktdoclix.db",
			"settings.json",
			"Datenbank/",
			"Datenbank/Gem.00001/",
			"Datenbank/Gem.00001/seite1.jpg",
			"Datenbank/Kirch.00001/",
		} {
			if !names[want] {
				t.Errorf("expected %s in backup, got %v", want, names)
			}
		}
	})

	t.Run("existing file needs force", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()

		outFile := filepath.Join(tempDir, "archiv.tar.gz")
		os.WriteFile(outFile, []byte("old"), 0644)

		runCLI(t, "backup", outFile)
		if ExitCode != 1 {
			t.Errorf("expected exit code 1, got %d", ExitCode)
		}
	})
}

func readTarNames(t *testing.T, path string) map[string]bool {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open backup: %v", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("backup is not gzip: %v", err)
	}
	tr := tar.NewReader(gr)

	names := make(map[string]bool)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read backup: %v", err)
		}
		names[header.Name] = true
	}
	return names
}
