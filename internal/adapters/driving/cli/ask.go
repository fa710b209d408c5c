package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var (
	askTopK        int
	askBudget      int
	askContextOnly bool
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the notebook",
	Long: `Collects the passages that best match the question, up to a word budget,
and answers from them. Every answer lists the documents it drew on.

Use --context to print the retrieved passages without an answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "maximum passages to consider (0 = configured default)")
	askCmd.Flags().IntVarP(&askBudget, "budget", "b", 0, "word budget for passages (0 = configured default)")
	askCmd.Flags().BoolVarP(&askContextOnly, "context", "c", false, "print the retrieved context only")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	opts := domain.AskOptions{
		TopK:        askTopK,
		TokenBudget: askBudget,
	}

	if askContextOnly {
		return runAskContext(cmd, question, opts)
	}

	if chatService == nil {
		return errors.New("chat service not configured")
	}

	answer, err := chatService.Ask(cmd.Context(), question, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputJSON(cmd, answer)
	}

	cmd.Println(answer.Content)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  - %s (%s)\n", src.Name, src.ID)
		}
	}
	cmd.Printf("\nConfidence: %.0f%%\n", answer.Confidence*100)
	return nil
}

func runAskContext(cmd *cobra.Command, question string, opts domain.AskOptions) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	rc, err := notebookService.Ask(cmd.Context(), question, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputJSON(cmd, rc)
	}

	if rc.IsEmpty() {
		cmd.Println("No relevant passages found.")
		return nil
	}

	cmd.Printf("Context: %d %s, %d words, %d %s\n\n",
		len(rc.Chunks), plural(len(rc.Chunks), "passage"),
		rc.TokenCount,
		len(rc.Documents), plural(len(rc.Documents), "document"))
	for i := range rc.Chunks {
		c := &rc.Chunks[i]
		cmd.Printf("  [%d] %s #%d (%.0f)\n", i+1, c.DocumentName, c.Ordinal, c.Score)
		cmd.Printf("      %s\n\n", c.Text)
	}
	return nil
}
