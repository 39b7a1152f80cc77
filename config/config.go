// Package config loads runtime configuration: built-in defaults, then
// .env.local and .env files, then environment variables. Command-line
// flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/gaurav-prasanna/recipepipe/core/ai"
	"github.com/gaurav-prasanna/recipepipe/core/extract"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/video"
	"github.com/gaurav-prasanna/recipepipe/crawl"
)

// Environment variable names.
const (
	EnvAPIKey        = "ANTHROPIC_API_KEY"
	EnvModel         = "ANTHROPIC_MODEL"
	EnvBaseURL       = "ANTHROPIC_BASE_URL"
	EnvAITimeout     = "RECIPEPIPE_AI_TIMEOUT"
	EnvFetchTimeout  = "RECIPEPIPE_FETCH_TIMEOUT"
	EnvAddr          = "RECIPEPIPE_ADDR"
	EnvLogLevel      = "RECIPEPIPE_LOG_LEVEL"
	EnvCaptionBudget = "RECIPEPIPE_CAPTION_BUDGET"
	EnvHTMLBudget    = "RECIPEPIPE_HTML_BUDGET"
	EnvMaxLinks      = "RECIPEPIPE_MAX_LINKS"
)

// DefaultEnvFiles are read in order; earlier files win.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Config is the effective configuration.
type Config struct {
	AnthropicAPIKey   string
	AnthropicModel    string
	AnthropicBaseURL  string
	AITimeout         time.Duration
	FetchTimeout      time.Duration
	ListenAddr        string
	LogLevel          string
	CaptionBudget     int
	HTMLBudget        int
	MaxLinkCandidates int
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		AnthropicModel:    ai.DefaultModel,
		AnthropicBaseURL:  ai.DefaultBaseURL,
		AITimeout:         ai.DefaultTimeout,
		FetchTimeout:      fetch.DefaultTimeout,
		ListenAddr:        ":8080",
		LogLevel:          "info",
		CaptionBudget:     video.DefaultCaptionBudget,
		HTMLBudget:        extract.DefaultBudget,
		MaxLinkCandidates: crawl.DefaultMaxCandidates,
	}
}

// Load reads the given env files (DefaultEnvFiles when none are given)
// and the process environment. Missing files are skipped. Variables
// already set in the environment are never overwritten by a file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from defaults overridden by getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	setString(&cfg.AnthropicAPIKey, getenv(EnvAPIKey))
	setString(&cfg.AnthropicModel, getenv(EnvModel))
	setString(&cfg.AnthropicBaseURL, getenv(EnvBaseURL))
	setString(&cfg.ListenAddr, getenv(EnvAddr))
	setString(&cfg.LogLevel, getenv(EnvLogLevel))

	var errs []error
	errs = append(errs,
		setDuration(&cfg.AITimeout, EnvAITimeout, getenv(EnvAITimeout)),
		setDuration(&cfg.FetchTimeout, EnvFetchTimeout, getenv(EnvFetchTimeout)),
		setInt(&cfg.CaptionBudget, EnvCaptionBudget, getenv(EnvCaptionBudget)),
		setInt(&cfg.HTMLBudget, EnvHTMLBudget, getenv(EnvHTMLBudget)),
		setInt(&cfg.MaxLinkCandidates, EnvMaxLinks, getenv(EnvMaxLinks)),
	)
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AIConfigured reports whether a usable API key is present. The
// placeholder shipped in example env files does not count.
func (c Config) AIConfigured() bool {
	return ai.KeyConfigured(c.AnthropicAPIKey)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("45s") or a bare number of seconds.
func setDuration(dst *time.Duration, name, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		*dst = time.Duration(n) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("%s: invalid duration %q", name, v)
	}
	*dst = d
	return nil
}

func setInt(dst *int, name, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s: invalid positive integer %q", name, v)
	}
	*dst = n
	return nil
}
