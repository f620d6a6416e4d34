// Package session resolves the working language for a caller and keeps the
// stored preference and the message-catalog subsystem in lockstep when the
// language changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-dbtranslation/internal/logging"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/goliatone/go-dbtranslation/registry"
)

var (
	ErrLanguageCodeRequired = errors.New("session: language code is required")
	ErrPreferencesRequired  = errors.New("session: preference store is required")
)

// Preferences stores the caller's language choice. Implementations back this
// with whatever carries per-caller state: an HTTP session, a user profile
// row, a config file. Locale reports false when no choice was ever stored.
type Preferences interface {
	Locale(ctx context.Context) (string, bool)
	SetLocale(ctx context.Context, code string) error
}

// Activator is the message-catalog side of a language switch: static UI
// strings live in a separate localization subsystem, and Activate points it
// at the given language. Active reports the currently activated code.
type Activator interface {
	Activate(code string) error
	Active() string
}

// Service answers "which language is this caller working in" and performs
// language switches that keep both halves of the system consistent.
type Service interface {
	// Current returns the preferred language when one is stored and still
	// registered, otherwise the default language. No default configured is
	// an error; callers should never guess a language.
	Current(ctx context.Context) (*registry.Language, error)
	// Activate switches the caller to the named language: the message
	// catalog is activated first, then the preference is persisted. If
	// persisting fails the catalog is rolled back to its previous language
	// so the two stores never disagree.
	Activate(ctx context.Context, code string) (*registry.Language, error)
}

// ServiceOption configures the session service.
type ServiceOption func(*service)

// WithActivator wires the message-catalog activator into language switches.
func WithActivator(activator Activator) ServiceOption {
	return func(s *service) {
		s.activator = activator
	}
}

// WithLogger attaches a logger provider to the service.
func WithLogger(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.SessionLogger(provider)
	}
}

type service struct {
	languages registry.Service
	prefs     Preferences
	activator Activator
	logger    interfaces.Logger
}

// NewService constructs the session service over the language registry and a
// preference store.
func NewService(languages registry.Service, prefs Preferences, opts ...ServiceOption) (Service, error) {
	if prefs == nil {
		return nil, ErrPreferencesRequired
	}
	s := &service{
		languages: languages,
		prefs:     prefs,
		activator: noopActivator{},
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Current(ctx context.Context) (*registry.Language, error) {
	if code, ok := s.prefs.Locale(ctx); ok && code != "" {
		lang, err := s.languages.LanguageByCode(ctx, code)
		if err == nil {
			return lang, nil
		}
		var notFound *registry.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// The stored preference points at a language that was removed.
		// Treat it like no preference rather than failing every request.
		s.logger.Warn("session.stale_preference", "code", code)
	}
	return s.languages.DefaultLanguage(ctx)
}

func (s *service) Activate(ctx context.Context, code string) (*registry.Language, error) {
	if code == "" {
		return nil, ErrLanguageCodeRequired
	}

	lang, err := s.languages.LanguageByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	previous := s.activator.Active()
	if err := s.activator.Activate(lang.Code); err != nil {
		return nil, fmt.Errorf("session: activate message catalog: %w", err)
	}

	if err := s.prefs.SetLocale(ctx, lang.Code); err != nil {
		if previous != "" {
			if rbErr := s.activator.Activate(previous); rbErr != nil {
				s.logger.Error("session.rollback_failed", "code", previous, "error", rbErr)
			}
		}
		return nil, fmt.Errorf("session: persist language preference: %w", err)
	}

	s.logger.Info("session.language_activated", "code", lang.Code)
	return lang, nil
}

type noopActivator struct{}

func (noopActivator) Activate(string) error { return nil }
func (noopActivator) Active() string        { return "" }

// MemoryPreferences is an in-memory preference store for tests and
// single-caller tools.
type MemoryPreferences struct {
	mu     sync.RWMutex
	code   string
	stored bool
}

// NewMemoryPreferences creates an empty in-memory preference store.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{}
}

func (p *MemoryPreferences) Locale(context.Context) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.code, p.stored
}

func (p *MemoryPreferences) SetLocale(_ context.Context, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.code = code
	p.stored = true
	return nil
}
