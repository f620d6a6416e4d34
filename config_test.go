package dbtranslation

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("default language = %q", cfg.DefaultLanguage)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLanguage = ""
	if err := cfg.Validate(); !errors.Is(err, ErrDefaultLanguageRequired) {
		t.Fatalf("expected ErrDefaultLanguageRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.DefaultLanguage = "fr"
	if err := cfg.Validate(); !errors.Is(err, ErrDefaultLanguageUnknown) {
		t.Fatalf("expected ErrDefaultLanguageUnknown, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	// No seed languages means the default language constraint does not apply.
	cfg = Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty config Validate() error = %v", err)
	}
}
