package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [doc-id...]",
	Short: "Remove documents and their chunks",
	Long: `Removes documents from the notebook. Their chunks stop appearing in
search results and answers immediately. Unknown IDs are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	for _, id := range args {
		if err := notebookService.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", id, err)
		}
		cmd.Printf("Deleted %s\n", id)
	}
	return nil
}
