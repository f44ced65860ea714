package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triago.yaml")
	content := `
server:
  addr: ":9000"
  maxUploadBytes: 5242880
  maxConns: 64
  allowedOrigins:
    - https://app.example.com
llm:
  base: http://localhost:8081/v1
  model: test-model
  key: sk-test
  timeout: 15s
verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	var cfg Config
	fc.Apply(&cfg)

	if cfg.Addr != ":9000" || cfg.MaxUploadBytes != 5242880 || cfg.MaxConns != 64 {
		t.Fatalf("server section not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("origins not applied: %v", cfg.AllowedOrigins)
	}
	if cfg.LLMModel != "test-model" || cfg.LLMAPIKey != "sk-test" || cfg.LLMTimeout != 15*time.Second {
		t.Fatalf("llm section not applied: %+v", cfg)
	}
	if !cfg.Verbose {
		t.Fatal("verbose not applied")
	}
}

func TestFileConfig_FlagsTakePrecedence(t *testing.T) {
	var fc FileConfig
	fc.Server.Addr = ":9000"
	fc.LLM.Model = "file-model"

	cfg := Config{Addr: ":8000", LLMModel: "flag-model"}
	fc.Apply(&cfg)

	if cfg.Addr != ":8000" || cfg.LLMModel != "flag-model" {
		t.Fatalf("file values must not override flags: %+v", cfg)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nTRIAGO_TEST_KEY=valor\nTRIAGO_TEST_QUOTED=\"entre aspas\"\nmalformed line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("TRIAGO_TEST_KEY", "")
	t.Setenv("TRIAGO_TEST_QUOTED", "")

	if err := LoadEnvFiles(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load env: %v", err)
	}
	if got := os.Getenv("TRIAGO_TEST_KEY"); got != "valor" {
		t.Fatalf("TRIAGO_TEST_KEY = %q", got)
	}
	if got := os.Getenv("TRIAGO_TEST_QUOTED"); got != "entre aspas" {
		t.Fatalf("TRIAGO_TEST_QUOTED = %q", got)
	}
}
