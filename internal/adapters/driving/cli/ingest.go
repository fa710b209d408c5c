package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var (
	ingestURLs []string
	ingestText string
	ingestName string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Add files, web pages or text to the notebook",
	Long: `Extracts text from each source, splits it into sentence-window chunks
and indexes them. Re-ingesting a file or URL replaces its previous chunks.

Examples:
  notebook ingest notes.md paper.pdf
  notebook ingest --url https://example.com/article
  notebook ingest --text "Cats are mammals." --name "Animals"
  echo "Cats are mammals." | notebook ingest --text -`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringArrayVarP(&ingestURLs, "url", "u", nil, "web page to fetch and ingest (repeatable)")
	ingestCmd.Flags().StringVarP(&ingestText, "text", "t", "", "text to ingest, or - to read standard input")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "name for text ingested with --text")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if len(args) == 0 && len(ingestURLs) == 0 && ingestText == "" {
		return errors.New("nothing to ingest: pass file paths, --url or --text")
	}

	ctx := cmd.Context()
	var failed int

	for _, path := range args {
		doc, err := ingestService.IngestFile(ctx, path)
		if !reportIngest(cmd, path, doc, err) {
			failed++
		}
	}

	for _, url := range ingestURLs {
		doc, err := ingestService.IngestURL(ctx, url)
		if !reportIngest(cmd, url, doc, err) {
			failed++
		}
	}

	if ingestText != "" {
		text := ingestText
		if text == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read standard input: %w", err)
			}
			text = string(data)
		}
		doc, err := ingestService.IngestText(ctx, ingestName, text)
		if !reportIngest(cmd, "text", doc, err) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d source(s) failed to ingest", failed)
	}
	return nil
}

// reportIngest prints the outcome for one source and reports success.
func reportIngest(cmd *cobra.Command, source string, doc *domain.Document, err error) bool {
	if err != nil {
		cmd.PrintErrf("  ✗ %s: %v\n", source, err)
		return false
	}

	chunks := 0
	if notebookService != nil {
		if cs, chunkErr := notebookService.Chunks(cmd.Context(), doc.ID); chunkErr == nil {
			chunks = len(cs)
		}
	}

	cmd.Printf("  ✓ %s (%s): %d %s\n", doc.DisplayName(), doc.ID, chunks, plural(chunks, "chunk"))
	return true
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
