// Package web exposes the analysis pipeline over HTTP. The boundary is
// thin: routing, request validation, CORS, upload-size limits and response
// serialization; all decisions live in the analyze package.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"

	"github.com/triago/triago/internal/analyze"
	"github.com/triago/triago/internal/extract"
)

const (
	// DefaultMaxUploadBytes caps a request body, form fields included.
	DefaultMaxUploadBytes = 10 << 20
	// DefaultMaxConns bounds concurrent connections on the listener; each
	// request may hold an outbound LLM call open for several seconds.
	DefaultMaxConns = 256
)

// Server serves the analysis API.
type Server struct {
	analyzer       *analyze.Analyzer
	httpServer     *http.Server
	maxUploadBytes int64
	maxConns       int
	allowedOrigins []string
}

// Option adjusts a Server at construction time.
type Option func(*Server)

// WithMaxUploadBytes overrides the request body cap.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithMaxConns overrides the concurrent connection bound.
func WithMaxConns(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxConns = n
		}
	}
}

// WithAllowedOrigins restricts CORS to the given origins. The default
// allows any origin, matching the original public deployment.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// NewServer wires the router. addr is the listen address, e.g. ":8000".
func NewServer(addr string, analyzer *analyze.Analyzer, opts ...Option) *Server {
	s := &Server{
		analyzer:       analyzer,
		maxUploadBytes: DefaultMaxUploadBytes,
		maxConns:       DefaultMaxConns,
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the chi router. Exposed separately so tests can drive the
// handler without a listener.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(s.cors)

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)
	return r
}

// Start listens and serves until the listener closes. The listener is
// wrapped so at most maxConns connections are processed concurrently.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	log.Info().Str("addr", s.httpServer.Addr).Msg("servidor HTTP no ar")
	err = s.httpServer.Serve(netutil.LimitListener(ln, s.maxConns))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart (or urlencoded) form with a `text`
// field or a `file` upload and returns the serialized report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	input, err := parseInput(r, s.maxUploadBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if isCallerError(err) {
			status = http.StatusBadRequest
		} else {
			log.Error().Err(err).Msg("falha inesperada na análise")
			err = errors.New("erro ao processar a mensagem do email")
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// parseInput reads the `text` and `file` form fields. A missing file field
// is fine; exact input validation is the analyzer's job.
func parseInput(r *http.Request, maxBytes int64) (analyze.Input, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return analyze.Input{}, fmt.Errorf("requisição multipart inválida: %w", errBadRequest)
		}
	} else if err := r.ParseForm(); err != nil {
		return analyze.Input{}, fmt.Errorf("requisição inválida: %w", errBadRequest)
	}

	input := analyze.Input{Text: r.FormValue("text")}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			return analyze.Input{}, fmt.Errorf("falha ao ler o arquivo enviado: %w", errBadRequest)
		}
		input.File = &extract.Upload{Filename: header.Filename, Data: data}
	case errors.Is(err, http.ErrMissingFile):
		// text-only request
	default:
		return analyze.Input{}, fmt.Errorf("campo de arquivo inválido: %w", errBadRequest)
	}
	return input, nil
}

// isCallerError reports whether the failure belongs to the request rather
// than the service.
func isCallerError(err error) bool {
	return errors.Is(err, analyze.ErrMissingInput) ||
		errors.Is(err, extract.ErrUnsupportedFormat) ||
		errors.Is(err, extract.ErrContentEmpty) ||
		errors.Is(err, extract.ErrUnreadableDocument) ||
		errors.Is(err, errBadRequest)
}
