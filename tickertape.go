package tickertape

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/tickertape/internal/config"
	"github.com/aretw0/tickertape/pkg/adapters/mcp"
	"github.com/aretw0/tickertape/pkg/adapters/memory"
	"github.com/aretw0/tickertape/pkg/adapters/redis"
	"github.com/aretw0/tickertape/pkg/adapters/yahoo"
	"github.com/aretw0/tickertape/pkg/dispatch"
	"github.com/aretw0/tickertape/pkg/finance"
	"github.com/aretw0/tickertape/pkg/observability"
	"github.com/aretw0/tickertape/pkg/ports"
	"github.com/aretw0/tickertape/pkg/registry"
)

//go:embed VERSION
var version string

// Version is the release version of tickertape.
var Version = strings.TrimSpace(version)

// App holds the wired components of a running server.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Provider   ports.QuoteProvider
	Registry   *registry.Registry
	Dispatcher *dispatch.Dispatcher
	Metrics    *observability.Metrics
	Journal    *redis.Journal
}

// New wires the provider, registry, metrics, journal and dispatcher described by cfg.
// The registry is frozen before New returns.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := NewProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	reg := registry.NewRegistry()
	if err := finance.Register(reg, provider); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	reg.Freeze()

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Provider: provider,
		Registry: reg,
	}

	opts := []dispatch.Option{dispatch.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		app.Metrics = observability.NewMetrics()
		opts = append(opts, dispatch.WithMetrics(app.Metrics))
	}
	if cfg.Journal.Addr != "" {
		app.Journal = openJournal(cfg.Journal, logger)
		if app.Journal != nil {
			opts = append(opts, dispatch.WithJournal(app.Journal))
		}
	}

	app.Dispatcher = dispatch.New(reg, opts...)
	logger.Debug("Registry frozen", "tools", len(reg.Tools()), "prompts", len(reg.Prompts()), "provider", cfg.Provider.Kind)
	return app, nil
}

// NewProvider builds the quote provider selected by cfg.Kind.
func NewProvider(cfg config.ProviderConfig) (ports.QuoteProvider, error) {
	switch cfg.Kind {
	case "yahoo":
		return yahoo.New(
			yahoo.WithBaseURLs(cfg.Query1URL, cfg.Query2URL, cfg.CookieURL),
			yahoo.WithUserAgent(cfg.UserAgent),
			yahoo.WithTimeout(cfg.Timeout),
		), nil
	case "fixture":
		p, err := memory.LoadProvider(cfg.Fixture)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Kind)
	}
}

// openJournal connects to Redis. An unreachable server disables the journal
// instead of failing startup.
func openJournal(cfg config.JournalConfig, logger *slog.Logger) *redis.Journal {
	j := redis.New(cfg.Addr, cfg.Password, cfg.DB,
		redis.WithStream(cfg.Stream),
		redis.WithMaxLen(cfg.MaxLen),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := j.Ping(ctx); err != nil {
		logger.Warn("Invocation journal disabled", "addr", cfg.Addr, "error", err)
		_ = j.Close()
		return nil
	}
	logger.Info("Invocation journal enabled", "addr", cfg.Addr, "stream", cfg.Stream)
	return j
}

// MCPServer returns an MCP server over the app's dispatcher.
func (a *App) MCPServer() *mcp.Server {
	return mcp.NewServer(a.Dispatcher, a.Config.Server.Name, Version,
		mcp.WithMetrics(a.Metrics),
		mcp.WithLogger(a.Logger),
	)
}

// Close releases external connections.
func (a *App) Close() error {
	var errs []error
	if a.Journal != nil {
		errs = append(errs, a.Journal.Close())
	}
	return errors.Join(errs...)
}
