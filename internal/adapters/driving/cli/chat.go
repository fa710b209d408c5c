package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Starts a question and answer session over the notebook. Each line is
asked as a question; answers and questions are kept in the history.

Commands:
  /history - Show the conversation so far
  /clear   - Clear the conversation history
  /quit    - Leave the session (also: exit, Ctrl-D)`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := cmd.Context()
	interactive := isTerminal(cmd)
	scanner := bufio.NewScanner(cmd.InOrStdin())

	if interactive {
		cmd.Println("Ask a question, or /quit to leave.")
	}

	for {
		if interactive {
			cmd.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit", "exit", "quit":
			return nil
		case "/clear":
			if err := chatService.ClearHistory(ctx); err != nil {
				cmd.PrintErrf("Error: %v\n", err)
				continue
			}
			cmd.Println("History cleared.")
			continue
		case "/history":
			messages, err := chatService.History(ctx, 0)
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
				continue
			}
			printMessages(cmd, messages)
			continue
		}

		answer, err := chatService.Ask(ctx, line, domain.AskOptions{})
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}

		cmd.Println(answer.Content)
		if len(answer.Sources) > 0 {
			names := make([]string, len(answer.Sources))
			for i, src := range answer.Sources {
				names[i] = src.Name
			}
			cmd.Printf("Sources: %s\n", strings.Join(names, ", "))
		}
		cmd.Println()
	}

	return scanner.Err()
}

// isTerminal reports whether the command reads from an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
