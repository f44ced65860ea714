package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/triago/triago/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		addr        string
		configPath  string
		envFile     string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		llmTimeout  time.Duration
		maxUploadMB int64
		maxConns    int
		corsOrigins string
		verbose     bool
	)

	flag.StringVar(&addr, "addr", envOr("ADDR", ":8000"), "HTTP listen address")
	flag.StringVar(&configPath, "config", os.Getenv("TRIAGO_CONFIG"), "Path to optional YAML config file")
	flag.StringVar(&envFile, "env", ".env", "Path to optional dotenv file")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the inference service (env OPENAI_API_KEY_EMAIL_ANALYZER or LLM_API_KEY)")
	flag.DurationVar(&llmTimeout, "llm.timeout", 0, "Per-call timeout for the inference service (default 20s)")
	flag.Int64Var(&maxUploadMB, "max.uploadMB", 0, "Maximum upload size in MiB (default 10)")
	flag.IntVar(&maxConns, "max.conns", 0, "Maximum concurrent connections (default 256)")
	flag.StringVar(&corsOrigins, "cors.origins", os.Getenv("CORS_ORIGINS"), "Comma-separated allowed CORS origins (default any)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if err := app.LoadEnvFiles(envFile); err != nil {
		log.Error().Err(err).Msg("falha ao carregar arquivo .env")
		os.Exit(1)
	}
	if llmKey == "" {
		llmKey = envOr("OPENAI_API_KEY_EMAIL_ANALYZER", os.Getenv("LLM_API_KEY"))
	}

	cfg := app.Config{
		Addr:           addr,
		MaxUploadBytes: maxUploadMB << 20,
		MaxConns:       maxConns,
		LLMBaseURL:     llmBaseURL,
		LLMModel:       llmModel,
		LLMAPIKey:      llmKey,
		LLMTimeout:     llmTimeout,
		Verbose:        verbose,
	}
	if s := strings.TrimSpace(corsOrigins); s != "" {
		for _, part := range strings.Split(s, ",") {
			if v := strings.TrimSpace(part); v != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, v)
			}
		}
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Msg("falha ao carregar arquivo de configuração")
			os.Exit(1)
		}
		fc.Apply(&cfg)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("encerrando")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return a.Shutdown(ctx)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
