// Command execution for CLI commands.
//
// Information Hiding:
// - Component wiring hidden from main
// - Output formatting hidden
// - Engine error taxonomy mapped to user-facing text here

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/serenityspa/concierge/catalog"
	"github.com/serenityspa/concierge/config"
	"github.com/serenityspa/concierge/engine"
	"github.com/serenityspa/concierge/internal/logging"
	"github.com/serenityspa/concierge/llm"
	"github.com/serenityspa/concierge/server"
	"github.com/serenityspa/concierge/storage"
	"github.com/serenityspa/concierge/tools"
)

// Options holds CLI execution options. Non-zero fields override the
// environment-derived settings.
type Options struct {
	Provider string
	Model    string
	Session  string
	Debug    bool
	Pretty   bool
}

// components holds the wired application graph.
type components struct {
	engine   *engine.Engine
	registry *tools.Registry
	log      zerolog.Logger
	cleanup  func()
}

// build wires the catalog, tools, provider, store and engine from settings.
func build(settings config.Settings, opts Options) (*components, error) {
	log := logging.New(settings.Log.Debug || opts.Debug, settings.Log.Pretty || opts.Pretty)

	backend, closeCatalog, err := buildCatalog(settings.Catalog)
	if err != nil {
		return nil, err
	}

	registry, err := tools.NewCatalogRegistry(backend)
	if err != nil {
		closeCatalog()
		return nil, err
	}
	executor := tools.NewExecutor(registry, settings.Agent.ToolTimeout, log)

	store, closeStore, err := buildStore(settings.Store)
	if err != nil {
		closeCatalog()
		return nil, err
	}

	provider, err := buildProvider(settings.LLM, opts)
	if err != nil {
		closeCatalog()
		closeStore()
		return nil, err
	}

	engineConfig := engine.Config{
		SystemPrompt:     settings.Agent.SystemPrompt,
		MaxRounds:        settings.Agent.MaxRounds,
		RetryAttempts:    settings.Agent.RetryAttempts,
		RetryBaseBackoff: settings.Agent.RetryBaseBackoff,
		RetryMaxBackoff:  settings.Agent.RetryMaxBackoff,
		ModelTimeout:     settings.Agent.ModelTimeout,
		HistoryLimit:     settings.Agent.HistoryLimit,
		FallbackAnswer:   settings.Agent.FallbackAnswer,
	}

	eng := engine.New(engineConfig, provider, registry, executor, store, log)

	log.Info().
		Str("provider", provider.Name()).
		Str("model", provider.Model()).
		Strs("tools", registry.Names()).
		Msg("concierge ready")

	return &components{
		engine:   eng,
		registry: registry,
		log:      log,
		cleanup: func() {
			closeStore()
			closeCatalog()
		},
	}, nil
}

// buildCatalog creates the service catalog backend from settings.
func buildCatalog(cfg config.CatalogConfig) (catalog.Backend, func(), error) {
	noop := func() {}
	switch strings.ToLower(cfg.Backend) {
	case "", "static":
		if cfg.Path != "" {
			backend, err := catalog.LoadFile(cfg.Path)
			if err != nil {
				return nil, noop, fmt.Errorf("failed to load catalog: %w", err)
			}
			return backend, noop, nil
		}
		return catalog.Default(), noop, nil
	case "sqlite":
		backend, err := catalog.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open catalog database: %w", err)
		}
		return backend, func() { _ = backend.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown catalog backend: %q", cfg.Backend)
	}
}

// buildStore creates the conversation store from settings.
func buildStore(cfg config.StoreConfig) (storage.ConversationStore, func(), error) {
	noop := func() {}
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return storage.NewInMemoryStore(), noop, nil
	case "sqlite":
		store, err := storage.OpenSqlite(cfg.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open database: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}

// buildProvider creates the model provider, preferring CLI overrides.
func buildProvider(cfg config.LLMConfig, opts Options) (llm.Provider, error) {
	name := cfg.Provider
	if opts.Provider != "" {
		name = opts.Provider
	}
	providerType, err := llm.ParseProviderType(name)
	if err != nil {
		return nil, err
	}

	builder := llm.NewProviderBuilder(providerType).
		MaxTokens(cfg.MaxTokens).
		Temperature(cfg.Temperature)
	if opts.Model != "" {
		builder = builder.Model(opts.Model)
	} else if cfg.Model != "" {
		builder = builder.Model(cfg.Model)
	}

	return builder.FromEnv()
}

// Chat starts an interactive chat session on stdin/stdout.
func Chat(ctx context.Context, opts Options) error {
	settings, err := config.New()
	if err != nil {
		return err
	}

	comps, err := build(settings, opts)
	if err != nil {
		return err
	}
	defer comps.cleanup()

	session := opts.Session
	if session == "" {
		session = uuid.NewString()
	}

	fmt.Printf("Serenity Spa concierge. Session %s. Type 'exit' to quit.\n\n", session)

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

		reply, err := comps.engine.Run(ctx, session, input)
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrUpstreamUnavailable):
				fmt.Println("\nSorry, I couldn't reach our systems just now. Please try again in a moment.")
			case errors.Is(err, engine.ErrInvalidInput):
				fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
			default:
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			fmt.Println()
			continue
		}

		fmt.Printf("\n%s\n\n", reply)
	}

	return scanner.Err()
}

// Serve runs the HTTP server until interrupted.
func Serve(ctx context.Context, opts Options) error {
	settings, err := config.New()
	if err != nil {
		return err
	}

	comps, err := build(settings, opts)
	if err != nil {
		return err
	}
	defer comps.cleanup()

	srv := &http.Server{
		Addr:         settings.Server.Addr,
		Handler:      server.New(comps.engine, comps.registry, comps.log).Handler(),
		ReadTimeout:  settings.Server.ReadTimeout,
		WriteTimeout: settings.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		comps.log.Info().Str("addr", settings.Server.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}

	comps.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ListTools prints the available tools.
func ListTools(verbose bool) error {
	registry, err := tools.NewCatalogRegistry(catalog.Default())
	if err != nil {
		return err
	}

	if verbose {
		fmt.Println(registry.Description())
		return nil
	}
	for _, spec := range registry.List() {
		fmt.Println(spec.String())
	}
	return nil
}
