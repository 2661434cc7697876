package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/user/aktdoclix/internal/archive"
	"github.com/user/aktdoclix/internal/folder"
)

// openedPaths records the folders the fake file manager was asked to show.
var openedPaths []string

// setupTestEnv sets up the test environment and returns a cleanup function
func setupTestEnv(t *testing.T) (tempDir string, cleanup func()) {
	t.Helper()
	tempDir = t.TempDir()
	origDir, _ := os.Getwd()
	os.Chdir(tempDir)
	t.Setenv("AKTDOCLIX_HOME", "")
	t.Setenv("AKTDOCLIX_ENV", "")

	// Mock the exit function to capture exit code instead of exiting
	origExitFunc := ExitFunc
	ExitFunc = func(code int) {
		ExitCode = code
		// Don't actually exit in tests
	}
	ExitCode = 0

	openedPaths = nil
	origOptions := sessionOptions
	sessionOptions = []archive.Option{archive.WithOpener(folder.OpenerFunc(func(path string) error {
		openedPaths = append(openedPaths, path)
		return nil
	}))}

	cleanup = func() {
		os.Chdir(origDir)
		ExitFunc = origExitFunc
		ExitCode = 0
		sessionOptions = origOptions
		listInput = os.Stdin
		resetFlags()
	}
	return tempDir, cleanup
}

// resetFlags resets every command flag for test isolation.
// Cobra keeps flag values and their Changed state between Execute calls.
func resetFlags() {
	resetCommandFlags(rootCmd)
}

func resetCommandFlags(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, c := range cmd.Commands() {
		resetCommandFlags(c)
	}
}

// runCLI runs the command line with fresh flags and returns what it
// printed to stdout.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags()
	ExitCode = 0

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		outC <- string(data)
	}()

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout
	output := <-outC

	if err != nil {
		t.Fatalf("aktdoclix %s: unexpected error: %v", strings.Join(args, " "), err)
	}
	return output
}

// seedRecords adds three records: two Gemeinde files from 1900 and 1912 and
// one Kirche file from 1903.
func seedRecords(t *testing.T) {
	t.Helper()
	runCLI(t, "add", "Rechnung Brunnenbau", "-c", "Gemeinde", "--date", "1900", "--location", "Schrank A")
	runCLI(t, "add", "Belege Schulhaus", "-c", "Gemeinde", "--date", "1912")
	runCLI(t, "add", "Taufregister", "-c", "Kirche", "--date", "1903", "--condition", "Leicht beschädigt")
	if ExitCode != 0 {
		t.Fatalf("seeding failed with exit code %d", ExitCode)
	}
}

func TestRootCommand_Help(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()

	output := runCLI(t, "--help")
	for _, name := range []string{"add", "list", "show", "set", "rm", "export", "settings", "watch", "backup"} {
		if !strings.Contains(output, name) {
			t.Errorf("expected help to list command %q", name)
		}
	}
}

func TestHumanCommand(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()

	output := runCLI(t, "human")
	if !strings.Contains(output, "aktdoclix - Essential Commands") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()

	output := runCLI(t, "version", "--json")
	if !strings.Contains(output, `"version": "dev"`) {
		t.Errorf("expected version in JSON output, got %s", output)
	}
}
