package app

import "time"

// Config holds runtime configuration for the service.
type Config struct {
	// HTTP
	Addr           string
	MaxUploadBytes int64
	MaxConns       int
	AllowedOrigins []string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	LLMTimeout time.Duration

	// Behavior
	Verbose bool
}
