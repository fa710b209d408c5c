// Package cli implements the notebook command line on top of the driving ports.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/core/ports/driving"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

var verbose bool

// startup runs once, after flags are parsed and before the first command.
var startup func(ctx context.Context) error

// Services used by the commands. Nil services make their commands fail
// with a "not configured" error.
var (
	notebookService driving.NotebookService
	ingestService   driving.IngestService
	chatService     driving.ChatService
	settingsService driving.SettingsService
	watchService    driving.WatchService
)

// Services bundles the driving ports the CLI needs.
type Services struct {
	Notebook driving.NotebookService
	Ingest   driving.IngestService
	Chat     driving.ChatService
	Settings driving.SettingsService
	Watch    driving.WatchService
}

var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Ask questions of your own documents",
	Long: `Notebook indexes files, web pages and pasted text into sentence-window
chunks and answers questions from the passages that best match them.

Every answer is grounded in retrieved passages; when nothing matches,
notebook says so instead of guessing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if startup == nil {
			return nil
		}
		run := startup
		startup = nil
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline details to stderr")
}

// SetServices installs the services the commands run against.
func SetServices(s Services) {
	notebookService = s.Notebook
	ingestService = s.Ingest
	chatService = s.Chat
	settingsService = s.Settings
	watchService = s.Watch
}

// SetStartup installs work that needs parsed flags, such as rebuilding the
// index, so its logging honours --verbose.
func SetStartup(fn func(ctx context.Context) error) {
	startup = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
