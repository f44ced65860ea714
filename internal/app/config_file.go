package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally to the flag namespaces.
type FileConfig struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		MaxUploadBytes int64    `yaml:"maxUploadBytes"`
		MaxConns       int      `yaml:"maxConns"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	LLM struct {
		BaseURL string   `yaml:"base"`
		Model   string   `yaml:"model"`
		APIKey  string   `yaml:"key"`
		Timeout Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Verbose bool `yaml:"verbose"`
}

// Duration accepts human-friendly YAML values like "15s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadConfigFile parses a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// Apply fills fields of cfg that are still unset. Flags and environment
// take precedence over file values.
func (fc FileConfig) Apply(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = fc.Server.Addr
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = fc.Server.MaxUploadBytes
	}
	if cfg.MaxConns == 0 {
		cfg.MaxConns = fc.Server.MaxConns
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = fc.Server.AllowedOrigins
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = time.Duration(fc.LLM.Timeout)
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
