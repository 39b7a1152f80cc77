package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.FetchTimeout != 10*time.Second || cfg.CaptionBudget != 3000 || cfg.HTMLBudget != 8000 || cfg.MaxLinkCandidates != 5 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.AIConfigured() {
		t.Error("AI configured without a key")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		EnvAPIKey:       " sk-test ",
		EnvModel:        "claude-test",
		EnvAITimeout:    "45",
		EnvFetchTimeout: "2500ms",
		EnvAddr:         "127.0.0.1:9000",
		EnvMaxLinks:     "3",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AnthropicAPIKey != "sk-test" || cfg.AnthropicModel != "claude-test" || cfg.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("strings not applied: %+v", cfg)
	}
	if cfg.AITimeout != 45*time.Second || cfg.FetchTimeout != 2500*time.Millisecond || cfg.MaxLinkCandidates != 3 {
		t.Errorf("numbers not applied: %+v", cfg)
	}
	if !cfg.AIConfigured() {
		t.Error("AI not configured with a key")
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{EnvAITimeout: "soon", EnvHTMLBudget: "-1"}))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestAIConfigured_Placeholder(t *testing.T) {
	cfg := Default()
	cfg.AnthropicAPIKey = "REPLACE_WITH_YOUR_KEY"
	if cfg.AIConfigured() {
		t.Fatal("placeholder key counted as configured")
	}
}

func TestLoad_EnvFiles(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	if err := os.WriteFile(local, []byte("RECIPEPIPE_LOG_LEVEL=debug\nRECIPEPIPE_CAPTION_BUDGET=1200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvCaptionBudget, "")
	os.Unsetenv(EnvLogLevel)
	os.Unsetenv(EnvCaptionBudget)

	cfg, err := Load(local, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" || cfg.CaptionBudget != 1200 {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	if err := os.WriteFile(f, []byte("RECIPEPIPE_ADDR=:1111\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAddr, ":2222")

	cfg, err := Load(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":2222" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug not enabled")
	}
	if _, err := NewLogger("chatty"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
