package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"documents", "doc"},
	Short:   "Manage notebook documents",
	Long:    `List, view, inspect or refresh the documents in the notebook.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentChunksCmd = &cobra.Command{
	Use:   "chunks [doc-id]",
	Short: "Print the indexed chunks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentChunks,
}

var documentRefreshCmd = &cobra.Command{
	Use:   "refresh [doc-id]",
	Short: "Re-ingest a file or web page document from its source",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRefresh,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentChunksCmd)
	documentCmd.AddCommand(documentRefreshCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	docs, err := notebookService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents yet. Add some with 'notebook ingest'.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name:  %s\n", docs[i].DisplayName())
		cmd.Printf("    Kind:  %s\n", docs[i].Kind)
		cmd.Printf("    State: %s\n", docs[i].State)
		if docs[i].Error != "" {
			cmd.Printf("    Error: %s\n", docs[i].Error)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d %s\n", len(docs), plural(len(docs), "document"))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	docID := args[0]
	ctx := cmd.Context()

	doc, err := notebookService.Get(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	chunks, err := notebookService.Chunks(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:     %s\n", doc.DisplayName())
	cmd.Printf("  Kind:     %s\n", doc.Kind)
	cmd.Printf("  URI:      %s\n", doc.URI)
	cmd.Printf("  State:    %s\n", doc.State)
	if doc.Error != "" {
		cmd.Printf("  Error:    %s\n", doc.Error)
	}
	cmd.Printf("  Words:    %d\n", domain.CountWords(doc.Text))
	cmd.Printf("  Chunks:   %d\n", len(chunks))
	cmd.Printf("  Ingested: %s\n", doc.IngestedAt.Format("2006-01-02 15:04:05"))

	if len(doc.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		for _, k := range slices.Sorted(maps.Keys(doc.Metadata)) {
			cmd.Printf("    %s: %v\n", k, doc.Metadata[k])
		}
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	doc, err := notebookService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(doc.Text)
	return nil
}

func runDocumentChunks(cmd *cobra.Command, args []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	chunks, err := notebookService.Chunks(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}

	if len(chunks) == 0 {
		cmd.Println("No chunks indexed for this document.")
		return nil
	}

	for i := range chunks {
		c := &chunks[i]
		cmd.Printf("  #%d sentences %d-%d, %d words\n", c.Ordinal, c.StartSentence, c.EndSentence, c.WordCount)
		cmd.Printf("      %s\n\n", c.Text)
	}
	return nil
}

func runDocumentRefresh(cmd *cobra.Command, args []string) error {
	if notebookService == nil || ingestService == nil {
		return errors.New("notebook service not configured")
	}

	docID := args[0]
	ctx := cmd.Context()

	doc, err := notebookService.Get(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Refreshing document %s...\n", docID)

	var refreshed *domain.Document
	switch doc.Kind {
	case domain.KindFile:
		refreshed, err = ingestService.IngestFile(ctx, doc.URI)
	case domain.KindURL:
		refreshed, err = ingestService.IngestURL(ctx, doc.URI)
	default:
		return fmt.Errorf("%s documents have no source to refresh from", doc.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to refresh document: %w", err)
	}

	if !reportIngest(cmd, doc.URI, refreshed, nil) {
		return errors.New("refresh failed")
	}
	return nil
}
