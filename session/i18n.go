package session

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// BundleActivator adapts a go-i18n message bundle to the Activator contract.
// It loads one TOML message file per language code (messages.<code>.toml) and
// swaps the active localizer when the working language changes.
type BundleActivator struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	fallback  string
	active    string
}

// NewBundleActivator builds an activator with messages loaded from dir for
// each of the given language codes. The fallback code seeds the bundle's
// default language and backstops lookups for languages with partial catalogs.
func NewBundleActivator(fallback, dir string, codes ...string) (*BundleActivator, error) {
	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("session: parse fallback language %q: %w", fallback, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, code := range codes {
		path := filepath.Join(dir, fmt.Sprintf("messages.%s.toml", code))
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("session: load message file %q: %w", path, err)
		}
	}

	return &BundleActivator{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, fallback),
		fallback:  fallback,
		active:    fallback,
	}, nil
}

// NewBundleActivatorFS is like NewBundleActivator but reads message files
// from an fs.FS, which lets callers embed their catalogs.
func NewBundleActivatorFS(fallback string, fsys fs.FS, codes ...string) (*BundleActivator, error) {
	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("session: parse fallback language %q: %w", fallback, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, code := range codes {
		path := fmt.Sprintf("messages.%s.toml", code)
		if _, err := bundle.LoadMessageFileFS(fsys, path); err != nil {
			return nil, fmt.Errorf("session: load message file %q: %w", path, err)
		}
	}

	return &BundleActivator{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, fallback),
		fallback:  fallback,
		active:    fallback,
	}, nil
}

// Activate points the localizer at the given language code. The fallback
// language stays in the lookup chain so partially translated catalogs still
// render.
func (a *BundleActivator) Activate(code string) error {
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("session: parse language %q: %w", code, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.localizer = i18n.NewLocalizer(a.bundle, code, a.fallback)
	a.active = code
	return nil
}

// Active returns the currently activated language code.
func (a *BundleActivator) Active() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

// Localize renders the message for the active language. Unknown message ids
// fall back to the id itself so templates never render empty.
func (a *BundleActivator) Localize(messageID string, data map[string]any) string {
	a.mu.RLock()
	localizer := a.localizer
	a.mu.RUnlock()

	out, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      messageID,
		DefaultMessage: &i18n.Message{ID: messageID, Other: messageID},
		TemplateData:   data,
	})
	if err != nil {
		return messageID
	}
	return out
}
