package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure chunking, retrieval, fetching and storage options.

Settings are stored in ~/.notebook/config.toml. Chunking and storage changes
take effect the next time notebook starts.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key, for example:

  notebook settings set retrieval.token_budget 1500
  notebook settings set chunking.sentences_per_chunk 4

Run 'notebook settings keys' to list the keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard that walks through every setting. Press Enter to keep a value.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Sentences per chunk: %d\n", settings.Chunking.SentencesPerChunk)
	cmd.Printf("  Minimum length:      %d characters\n", settings.Chunking.MinChunkLength)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Search top-k:  %d\n", settings.Retrieval.SearchTopK)
	cmd.Printf("  Context top-k: %d\n", settings.Retrieval.ContextTopK)
	cmd.Printf("  Token budget:  %d words\n", settings.Retrieval.TokenBudget)
	cmd.Println()

	cmd.Println("[Fetch]")
	cmd.Printf("  Requests per second: %g\n", settings.Fetch.RequestsPerSecond)
	cmd.Printf("  Timeout:             %ds\n", settings.Fetch.TimeoutSeconds)
	cmd.Println()

	cmd.Println("[Storage]")
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data directory: %s\n", dataDir)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'notebook settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Notebook Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	current := currentValues(settings)
	reader := bufio.NewReader(cmd.InOrStdin())

	changed := 0
	for _, key := range settingsService.Keys() {
		cmd.Printf("%s [%s]: ", key, current[key])
		input := readLine(reader)
		if input == "" || input == current[key] {
			continue
		}
		if err := settingsService.Set(key, input); err != nil {
			cmd.Printf("  Skipped: %v\n", err)
			continue
		}
		changed++
	}

	cmd.Println()
	cmd.Printf("Updated %d %s.\n", changed, plural(changed, "setting"))
	return nil
}

// currentValues renders settings by key for prompting.
func currentValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"chunking.sentences_per_chunk": fmt.Sprint(s.Chunking.SentencesPerChunk),
		"chunking.min_chunk_length":    fmt.Sprint(s.Chunking.MinChunkLength),
		"retrieval.search_top_k":       fmt.Sprint(s.Retrieval.SearchTopK),
		"retrieval.context_top_k":      fmt.Sprint(s.Retrieval.ContextTopK),
		"retrieval.token_budget":       fmt.Sprint(s.Retrieval.TokenBudget),
		"fetch.requests_per_second":    fmt.Sprint(s.Fetch.RequestsPerSecond),
		"fetch.timeout_seconds":        fmt.Sprint(s.Fetch.TimeoutSeconds),
		"storage.data_dir":             s.Storage.DataDir,
	}
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
