package dbtranslation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDefaultLanguageRequired = errors.New("dbtranslation: default language code is required when seed languages are configured")
	ErrDefaultLanguageUnknown  = errors.New("dbtranslation: default language code does not match any configured language")
	ErrLoggingLevelInvalid     = errors.New("dbtranslation: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("dbtranslation: logging format is invalid")
)

// Config captures the module's runtime configuration.
type Config struct {
	// DefaultLanguage is the code of the language used when a caller has no
	// stored preference. It must match one of the configured Languages.
	DefaultLanguage string `json:"default_language" yaml:"default_language"`
	// Languages seeds the language registry when Seed is called.
	Languages []LanguageConfig `json:"languages" yaml:"languages"`
	Logging   LoggingConfig    `json:"logging" yaml:"logging"`
	Cache     CacheConfig      `json:"cache" yaml:"cache"`
	Messages  MessagesConfig   `json:"messages" yaml:"messages"`
}

// LanguageConfig declares one seed language.
type LanguageConfig struct {
	Code       string `json:"code" yaml:"code"`
	Display    string `json:"display" yaml:"display"`
	NativeName string `json:"native_name,omitempty" yaml:"native_name,omitempty"`
}

// LoggingConfig controls the go-logger provider built by hosts that do not
// supply their own.
type LoggingConfig struct {
	Level     string `json:"level" yaml:"level"`
	Format    string `json:"format" yaml:"format"`
	AddSource bool   `json:"add_source" yaml:"add_source"`
}

// CacheConfig toggles read caching for reference data repositories. TTL
// bounds cache entries when the module builds its own cache service; a
// service supplied through WithCache keeps its own expiry settings.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// MessagesConfig points at the static message catalogs loaded into the
// session activator. Dir holds one messages.<code>.toml file per code.
type MessagesConfig struct {
	Dir   string   `json:"dir" yaml:"dir"`
	Codes []string `json:"codes" yaml:"codes"`
}

// DefaultConfig returns a configuration suitable for development: English as
// the only language, info-level JSON logging, caching disabled.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage: "en",
		Languages: []LanguageConfig{
			{Code: "en", Display: "English"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
	}
}

// Validate checks cross-field consistency before any wiring happens.
func (c Config) Validate() error {
	if len(c.Languages) > 0 {
		if strings.TrimSpace(c.DefaultLanguage) == "" {
			return ErrDefaultLanguageRequired
		}
		found := false
		for _, lang := range c.Languages {
			if strings.EqualFold(strings.TrimSpace(lang.Code), strings.TrimSpace(c.DefaultLanguage)) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrDefaultLanguageUnknown, c.DefaultLanguage)
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, c.Logging.Level)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, c.Logging.Format)
	}

	return nil
}
