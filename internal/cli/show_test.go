package cli

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/aktdoclix/internal/model"
)

type failingFinder struct{}

func (failingFinder) Related(int64) ([]model.Record, error) {
	return nil, &model.StorageError{Op: "related", Err: errors.New("database is locked")}
}

func TestShowCommand(t *testing.T) {
	t.Run("markdown with related records", func(t *testing.T) {
		_, cleanup := setupTestEnv(t)
		defer cleanup()
		seedRecords(t)
		runCLI(t, "add", "Gemeinderechnung", "-c", "Gemeinde", "--date", "1903")

		output := runCLI(t, "show", "1")
		if ExitCode != 0 {
			t.Fatalf("expected exit code 0, got %d", ExitCode)
		}
		for _, want := range []string{
			"# Gem.00001 Rechnung Brunnenbau",
			"**ID**: 1",
			"- **Zeitraum**: 1900-1901",
			"- **Lagerort**: Schrank A",
			"## Related",
			"Gem.00003",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Gem.00002") {
			t.Error("1912 is outside the five-year window")
		}
		if strings.Contains(output, "Kirch.00001") {
			t.Error("other categories are not related")
		}
	})

	t.Run("json includes scan status", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		seedRecords(t)

		output := runCLI(t, "show", "3", "--json")
		var got map[string]interface{}
		if err := json.Unmarshal([]byte(output), &got); err != nil {
			t.Fatalf("expected JSON, got %q: %v", output, err)
		}
		if got["scan"] != "empty" {
			t.Errorf("expected empty scan folder, got %v", got["scan"])
		}
		if got["level"] != "warning" {
			t.Errorf("expected warning level, got %v", got["level"])
		}
		if related, ok := got["related"].([]interface{}); !ok || len(related) != 0 {
			t.Errorf("expected empty related list, got %v", got["related"])
		}

		scan := filepath.Join(tempDir, "Datenbank", "Kirch.00001", "seite1.jpg")
		if err := os.WriteFile(scan, []byte("jpg"), 0644); err != nil {
			t.Fatal(err)
		}
		output = runCLI(t, "show", "3", "--json")
		json.Unmarshal([]byte(output), &got)
		if got["scan"] != "scanned" {
			t.Errorf("expected scanned, got %v", got["scan"])
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		_, cleanup := setupTestEnv(t)
		defer cleanup()

		output := runCLI(t, "show", "7", "--json")
		if ExitCode != 1 {
			t.Errorf("expected exit code 1, got %d", ExitCode)
		}
		var errResp JSONError
		if err := json.Unmarshal([]byte(output), &errResp); err != nil {
			t.Fatalf("expected JSON error, got %q", output)
		}
		if errResp.Code != ErrCodeRecordNotFound {
			t.Errorf("expected %s, got %s", ErrCodeRecordNotFound, errResp.Code)
		}
	})

	t.Run("related failure warns", func(t *testing.T) {
		_, cleanup := setupTestEnv(t)
		defer cleanup()
		jsonOutput = true
		defer func() { jsonOutput = false }()

		oldStdout := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w
		related := relatedOrWarn(failingFinder{}, 1)
		w.Close()
		os.Stdout = oldStdout
		out, _ := io.ReadAll(r)

		if related == nil || len(related) != 0 {
			t.Errorf("expected an empty related list, got %v", related)
		}
		var warning JSONWarning
		if err := json.Unmarshal(out, &warning); err != nil {
			t.Fatalf("expected JSON warning, got %q: %v", out, err)
		}
		if !warning.Warning || warning.Code != ErrCodeStorage {
			t.Errorf("expected storage warning, got %+v", warning)
		}
		if !strings.Contains(warning.Message, "database is locked") {
			t.Errorf("expected cause in message, got %q", warning.Message)
		}
	})
}
