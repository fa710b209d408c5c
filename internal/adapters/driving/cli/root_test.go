package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/answer/template"
	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/services"
	"github.com/custodia-labs/notebook-rag/internal/extractors"
	"github.com/custodia-labs/notebook-rag/internal/logger"
	"github.com/custodia-labs/notebook-rag/internal/postprocessors"
	"github.com/custodia-labs/notebook-rag/internal/scorers/lexical"
)

const animals = "Cats are mammals. Dogs are mammals too. Birds can fly. Fish live in water."

// stubFetcher serves one HTML page for any URL.
type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, url string) (*domain.RawSource, error) {
	if strings.Contains(url, "missing") {
		return nil, domain.NewExtractionError(url, errors.New("unexpected status 404"))
	}
	return &domain.RawSource{
		URI:      url,
		MIMEType: "text/html",
		Kind:     domain.KindURL,
		Content:  []byte("<html><head><title>Web Animals</title></head><body><p>" + animals + "</p></body></html>"),
	}, nil
}

// testServices holds the services installed by setupTestServices.
type testServices struct {
	notebook *services.NotebookService
	ingest   *services.IngestService
	chat     *services.ChatService
	settings *services.SettingsService
}

// setupTestServices installs in-memory services and returns a cleanup
// function that restores the previous services and flag values.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	pipeline, err := postprocessors.NewDefaultPipeline(domain.ChunkingSettings{
		SentencesPerChunk: 2,
		MinChunkLength:    10,
	})
	require.NoError(t, err)

	notebook := services.NewNotebookService(
		memory.NewDocumentStore(),
		services.NewIndexer(pipeline, memory.NewChunkIndex()),
		services.NewRanker(lexical.New()),
		domain.RetrievalSettings{},
	)
	ingest := services.NewIngestService(notebook, extractors.NewDefaultRegistry(), stubFetcher{})
	chat := services.NewChatService(notebook, template.New(nil), memory.NewConversationStore())
	settings := services.NewSettingsService(memory.NewConfigStore())

	old := Services{
		Notebook: notebookService,
		Ingest:   ingestService,
		Chat:     chatService,
		Settings: settingsService,
		Watch:    watchService,
	}
	SetServices(Services{
		Notebook: notebook,
		Ingest:   ingest,
		Chat:     chat,
		Settings: settings,
	})

	t.Cleanup(func() {
		SetServices(old)
		resetFlags()
		logger.SetVerbose(false)
	})

	return &testServices{notebook: notebook, ingest: ingest, chat: chat, settings: settings}
}

// resetFlags restores flag variables, which persist between executions.
func resetFlags() {
	verbose = false
	ingestURLs = nil
	ingestText = ""
	ingestName = ""
	searchTopK = 0
	searchJSON = false
	askTopK = 0
	askBudget = 0
	askContextOnly = false
	askJSON = false
	statsJSON = false
	historyLimit = 0
	historyClear = false
	mcpPort = 0
	mcpHost = "localhost"
	startup = nil
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(args ...string) (string, error) {
	return executeCommandWithInput(nil, args...)
}

func executeCommandWithInput(in io.Reader, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "notebook", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_VerboseEnablesLogger(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand("--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestRootCmd_StartupSeesParsedFlags(t *testing.T) {
	setupTestServices(t)

	calls := 0
	sawVerbose := false
	SetStartup(func(ctx context.Context) error {
		calls++
		sawVerbose = logger.IsVerbose()
		assert.NotNil(t, ctx)
		return nil
	})

	_, err := executeCommand("--verbose", "version")
	require.NoError(t, err)
	_, err = executeCommand("version")
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "startup runs once")
	assert.True(t, sawVerbose, "startup runs after --verbose is applied")
}

func TestRootCmd_StartupErrorFailsCommand(t *testing.T) {
	setupTestServices(t)
	SetStartup(func(context.Context) error {
		return errors.New("restore index: disk gone")
	})

	_, err := executeCommand("search", "mammals")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "restore index")
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"ingest", "delete", "ask", "search", "document", "stats",
		"chat", "history", "watch", "settings", "mcp", "version",
	} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestCommands_WithoutServices(t *testing.T) {
	old := Services{Notebook: notebookService, Ingest: ingestService, Chat: chatService, Settings: settingsService, Watch: watchService}
	SetServices(Services{})
	defer SetServices(old)

	tests := [][]string{
		{"ingest", "notes.txt"},
		{"delete", "doc-1"},
		{"ask", "question"},
		{"ask", "--context", "question"},
		{"search", "query"},
		{"document", "list"},
		{"stats"},
		{"chat"},
		{"history"},
		{"watch", "."},
		{"settings", "show"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := executeCommand(args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not configured")
		})
	}
}
