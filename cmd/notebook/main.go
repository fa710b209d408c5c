// Command notebook indexes local documents and answers questions from them.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/answer/template"
	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/notebook-rag/internal/adapters/driving/cli"
	"github.com/custodia-labs/notebook-rag/internal/connectors/filesystem"
	"github.com/custodia-labs/notebook-rag/internal/connectors/web"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/core/services"
	"github.com/custodia-labs/notebook-rag/internal/extractors"
	"github.com/custodia-labs/notebook-rag/internal/logger"
	"github.com/custodia-labs/notebook-rag/internal/postprocessors"
	"github.com/custodia-labs/notebook-rag/internal/scorers/lexical"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	closeStore, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Cobra has already printed any command error.
	err = cli.Execute()
	closeStore()
	if err != nil {
		os.Exit(1)
	}
}

// setup wires the services into the CLI and returns a function that
// releases the storage.
func setup() (func(), error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("Invalid settings, using defaults: %v", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close storage: %v", err)
		}
	}

	pipeline, err := postprocessors.NewDefaultPipeline(settings.Chunking)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("build chunking pipeline: %w", err)
	}

	notebookService := services.NewNotebookService(
		store.DocumentStore(),
		services.NewIndexer(pipeline, memory.NewChunkIndex()),
		services.NewRanker(lexical.New()),
		settings.Retrieval,
	)

	fetcher := web.New(
		web.WithRate(settings.Fetch.RequestsPerSecond),
		web.WithTimeout(time.Duration(settings.Fetch.TimeoutSeconds)*time.Second),
	)
	ingestService := services.NewIngestService(notebookService, extractors.NewDefaultRegistry(), fetcher)

	templates, err := file.NewTemplateStore("", template.DefaultTemplates())
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("open templates: %w", err)
	}
	chatService := services.NewChatService(notebookService, template.New(templates), store.ConversationStore())

	watchService := services.NewWatchService(ingestService, notebookService, func(dir string) driven.Watcher {
		return filesystem.New(dir)
	})

	cli.SetServices(cli.Services{
		Notebook: notebookService,
		Ingest:   ingestService,
		Chat:     chatService,
		Settings: settingsService,
		Watch:    watchService,
	})
	cli.SetVersion(version)

	// The chunk index lives in memory; rebuild it from stored documents
	// once --verbose has been applied.
	cli.SetStartup(func(ctx context.Context) error {
		restored, err := notebookService.Restore(ctx)
		if err != nil {
			return fmt.Errorf("restore index: %w", err)
		}
		logger.Debug("Restored %d documents", restored)
		return nil
	})

	return closeStore, nil
}
