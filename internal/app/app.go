// Package app wires configuration into a runnable service.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/triago/triago/internal/analyze"
	"github.com/triago/triago/internal/classify"
	"github.com/triago/triago/internal/web"
)

// App owns the assembled pipeline and its HTTP server.
type App struct {
	cfg      Config
	analyzer *analyze.Analyzer
	server   *web.Server
}

// New builds the analyzer and server from cfg. The LLM classifier is
// constructed here so a missing API key surfaces once, at startup: the
// service still comes up, classifying on the heuristic alone, and says so.
func New(cfg Config) (*App, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("endereço de escuta não configurado")
	}

	analyzer := &analyze.Analyzer{Fallback: classify.Heuristic{}}
	primary, err := classify.NewLLM(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		log.Warn().Err(err).Msg("classificador LLM desativado; análises usarão apenas a heurística")
	} else {
		analyzer.Primary = primary
	}

	var opts []web.Option
	if cfg.MaxUploadBytes > 0 {
		opts = append(opts, web.WithMaxUploadBytes(cfg.MaxUploadBytes))
	}
	if cfg.MaxConns > 0 {
		opts = append(opts, web.WithMaxConns(cfg.MaxConns))
	}
	if len(cfg.AllowedOrigins) > 0 {
		opts = append(opts, web.WithAllowedOrigins(cfg.AllowedOrigins))
	}

	return &App{
		cfg:      cfg,
		analyzer: analyzer,
		server:   web.NewServer(cfg.Addr, analyzer, opts...),
	}, nil
}

// Analyzer exposes the pipeline, mainly for tests and tooling.
func (a *App) Analyzer() *analyze.Analyzer {
	return a.analyzer
}

// Run serves HTTP until Shutdown is called.
func (a *App) Run() error {
	return a.server.Start()
}

// Shutdown drains in-flight requests until ctx expires.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
