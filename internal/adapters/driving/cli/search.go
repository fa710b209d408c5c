package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed chunks",
	Long: `Scores every indexed chunk against the query by word overlap, with a
bonus for chunks that contain the query verbatim, and prints the best matches.
Chunks that share no words with the query are never shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of results (0 = configured default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	opts := domain.SearchOptions{
		TopK: searchTopK,
	}

	results, err := notebookService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredChunk) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Document #ordinal (score)
		name := results[i].DocumentName
		if name == "" {
			name = results[i].DocumentID
		}

		cmd.Printf("  [%d] %s #%d (%.0f)\n", i+1, name, results[i].Ordinal, results[i].Score)
		cmd.Printf("      %s\n", truncate(results[i].Text, 200))
		cmd.Println()
	}

	return nil
}
