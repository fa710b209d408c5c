package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Keep the notebook in sync with a directory",
	Long: `Ingests every supported file under the directory, then follows changes:
new and modified files are re-ingested and removed files are deleted.
Hidden files and directories are ignored. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := args[0]
	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)

	err := watchService.Watch(ctx, dir, func(change domain.FileChange, err error) {
		if err != nil {
			cmd.PrintErrf("  ✗ %s %s: %v\n", change.Type, change.Path, err)
			return
		}
		cmd.Printf("  ✓ %s %s\n", change.Type, change.Path)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Stopped watching.")
	return nil
}
