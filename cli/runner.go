// Command execution for CLI commands.
//
// Information Hiding:
// - Session and collaborator setup hidden
// - Output formatting hidden
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/richinex/palaver/chat"
	"github.com/richinex/palaver/config"
	"github.com/richinex/palaver/render"
	"github.com/richinex/palaver/runtime"
	"github.com/richinex/palaver/storage"
	"github.com/richinex/palaver/upload"
	"github.com/richinex/palaver/vecstore"
)

// Options holds CLI execution options.
type Options struct {
	Provider string
	Channel  string
	DBPath   string
	Verbose  bool
}

// Chat starts an interactive chat session.
func Chat(ctx context.Context, opts Options) error {
	settings, err := config.New(providerOrDefault(opts.Provider))
	if err != nil {
		return err
	}

	store, err := storage.OpenSqlite(dbPath(opts, settings))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	rt, err := createRuntime(settings)
	if err != nil {
		return err
	}

	apiKey, err := config.APIKeyFor("openai")
	if err != nil {
		return fmt.Errorf("indexing store requires an OpenAI key: %w", err)
	}
	backend := vecstore.NewOpenAIBackend(apiKey)
	reconciler := vecstore.NewReconciler(backend, settings.Store.Name, settings.Store.FallbackIDs, logger(opts))

	terminal := render.NewTerminal(os.Stdout)
	session := chat.NewSession(chat.SessionConfig{
		Channel:    channel(opts, settings),
		Store:      store,
		Reconciler: reconciler,
		Runtime:    rt,
		Sink:       terminal,
		Logger:     logger(opts),
	})

	if err := session.ReplayHistory(ctx); err != nil {
		return err
	}

	fmt.Printf("Chat with %s (%s). Type 'exit' to quit.\n\n", rt.Name(), rt.Model())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		terminal.Reset()
		if err := session.RunTurn(ctx, input); err != nil {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			continue
		}
		terminal.Reset()
		fmt.Println()
	}

	return scanner.Err()
}

// History replays the persisted history to stdout.
func History(ctx context.Context, opts Options) error {
	settings, err := config.New(providerOrDefault(opts.Provider))
	if err != nil {
		return err
	}

	store, err := storage.OpenSqlite(dbPath(opts, settings))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	session := chat.NewSession(chat.SessionConfig{
		Channel: channel(opts, settings),
		Store:   store,
		Sink:    render.NewTerminal(os.Stdout),
		Logger:  logger(opts),
	})
	return session.ReplayHistory(ctx)
}

// Reset clears the persisted history for the channel.
func Reset(ctx context.Context, opts Options) error {
	settings, err := config.New(providerOrDefault(opts.Provider))
	if err != nil {
		return err
	}

	store, err := storage.OpenSqlite(dbPath(opts, settings))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ch := channel(opts, settings)
	if err := store.Clear(ctx, ch); err != nil {
		return err
	}
	fmt.Printf("Cleared history for channel %q\n", ch)
	return nil
}

// Upload attaches a file to the session: text documents go to the indexing
// store, images into the conversation history.
func Upload(ctx context.Context, path string, opts Options) error {
	settings, err := config.New(providerOrDefault(opts.Provider))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "text/plain"
	}

	store, err := storage.OpenSqlite(dbPath(opts, settings))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	apiKey, err := config.APIKeyFor("openai")
	if err != nil {
		return fmt.Errorf("uploads require an OpenAI key: %w", err)
	}
	backend := vecstore.NewOpenAIBackend(apiKey)
	reconciler := vecstore.NewReconciler(backend, settings.Store.Name, settings.Store.FallbackIDs, logger(opts))

	intake := upload.NewIntake(backend, reconciler, store, channel(opts, settings),
		render.NewTerminal(os.Stdout), logger(opts))
	return intake.Add(ctx, filepath.Base(path), mimeType, data)
}

func createRuntime(settings config.Settings) (runtime.Runtime, error) {
	providerType, err := runtime.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return nil, err
	}

	apiKey, err := config.APIKeyFor(settings.LLM.Provider)
	if err != nil {
		return nil, err
	}

	return runtime.New(providerType, apiKey, runtime.Config{
		Model:       settings.LLM.Model,
		MaxTokens:   settings.LLM.MaxTokens,
		Temperature: float32(settings.LLM.Temperature),
	})
}

func providerOrDefault(provider string) string {
	if provider == "" {
		return "openai"
	}
	return provider
}

func channel(opts Options, settings config.Settings) string {
	if opts.Channel != "" {
		return opts.Channel
	}
	return settings.Chat.Channel
}

func dbPath(opts Options, settings config.Settings) string {
	if opts.DBPath != "" {
		return opts.DBPath
	}
	return settings.Chat.DBPath
}

func logger(opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
