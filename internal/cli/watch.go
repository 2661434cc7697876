package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/aktdoclix/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report scan status changes as they happen",
	Long: `Watch the scan folders and print a line whenever a record folder
gains or loses scans. Bursts of changes are reported once.

Runs until interrupted (Ctrl+C). With --json each event is one JSON line.

Examples:
  aktdoclix watch
  aktdoclix watch --json`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, ok := openSession()
	if !ok {
		return nil
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := s.Watch(printWatchEvent)
	if err != nil {
		ExitOnError(err)
		return nil
	}
	defer w.Close()

	if !IsQuiet() && !GetJSONOutput() {
		fmt.Fprintf(os.Stderr, "Watching %d record folder(s) in %s (Ctrl+C to stop)\n",
			w.FolderCount(), s.Config().FolderPath())
	}

	<-ctx.Done()
	return nil
}

func printWatchEvent(e watch.Event) {
	if GetJSONOutput() {
		data, _ := json.Marshal(e)
		fmt.Println(string(data))
		return
	}
	fmt.Printf("%s %s %s\n", e.Status.Symbol(), e.Folder, e.Status)
}
