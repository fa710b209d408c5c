package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the conversation history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the most recent messages (0 = all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the conversation history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if historyClear {
		if err := chatService.ClearHistory(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Println("History cleared.")
		return nil
	}

	messages, err := chatService.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	printMessages(cmd, messages)
	return nil
}

func printMessages(cmd *cobra.Command, messages []domain.Message) {
	if len(messages) == 0 {
		cmd.Println("No conversation history.")
		return
	}

	for i := range messages {
		m := &messages[i]
		cmd.Printf("[%s] %s:\n", m.CreatedAt.Format("2006-01-02 15:04:05"), m.Role)
		cmd.Printf("  %s\n", m.Content)
		if len(m.Sources) > 0 {
			cmd.Printf("  (%d %s)\n", len(m.Sources), plural(len(m.Sources), "source"))
		}
		cmd.Println()
	}
}
