package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document and chunk counts",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	stats, err := notebookService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if statsJSON {
		return outputJSON(cmd, stats)
	}

	cmd.Println("[Documents]")
	cmd.Printf("  Total:     %d\n", stats.TotalDocuments)
	cmd.Printf("  Processed: %d\n", stats.ProcessedDocuments)
	cmd.Printf("  Failed:    %d\n", stats.FailedDocuments)
	cmd.Println()
	cmd.Println("[Chunks]")
	cmd.Printf("  Total:         %d\n", stats.TotalChunks)
	cmd.Printf("  Average words: %d\n", stats.AvgChunkWords)
	return nil
}
