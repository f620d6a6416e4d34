package session

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-dbtranslation/registry"
)

type stubActivator struct {
	active string
	calls  []string
	fail   bool
}

func (a *stubActivator) Activate(code string) error {
	if a.fail {
		return errors.New("activator down")
	}
	a.active = code
	a.calls = append(a.calls, code)
	return nil
}

func (a *stubActivator) Active() string { return a.active }

type failingPrefs struct{}

func (failingPrefs) Locale(context.Context) (string, bool) { return "", false }

func (failingPrefs) SetLocale(context.Context, string) error {
	return errors.New("preference store unavailable")
}

func newTestRegistry(t *testing.T) registry.Service {
	t.Helper()
	svc := registry.NewService(registry.NewMemoryLanguageRepository(), registry.NewMemoryFieldRepository())
	ctx := context.Background()

	if _, err := svc.RegisterLanguage(ctx, registry.RegisterLanguageRequest{Code: "en", Display: "English", IsDefault: true}); err != nil {
		t.Fatalf("RegisterLanguage(en) error = %v", err)
	}
	if _, err := svc.RegisterLanguage(ctx, registry.RegisterLanguageRequest{Code: "fr", Display: "French"}); err != nil {
		t.Fatalf("RegisterLanguage(fr) error = %v", err)
	}
	return svc
}

func TestService_Current_DefaultWithoutPreference(t *testing.T) {
	languages := newTestRegistry(t)
	svc, err := NewService(languages, NewMemoryPreferences())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	current, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.Code != "en" {
		t.Fatalf("Current() = %q, want default en", current.Code)
	}
}

func TestService_Current_StoredPreference(t *testing.T) {
	languages := newTestRegistry(t)
	prefs := NewMemoryPreferences()
	svc, err := NewService(languages, prefs)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	if err := prefs.SetLocale(ctx, "fr"); err != nil {
		t.Fatalf("SetLocale() error = %v", err)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.Code != "fr" {
		t.Fatalf("Current() = %q, want fr", current.Code)
	}
}

func TestService_Current_StalePreferenceFallsBack(t *testing.T) {
	languages := newTestRegistry(t)
	prefs := NewMemoryPreferences()
	svc, err := NewService(languages, prefs)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	if err := prefs.SetLocale(ctx, "removed"); err != nil {
		t.Fatalf("SetLocale() error = %v", err)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.Code != "en" {
		t.Fatalf("Current() = %q, want default en", current.Code)
	}
}

func TestService_Current_NoDefaultConfigured(t *testing.T) {
	languages := registry.NewService(registry.NewMemoryLanguageRepository(), registry.NewMemoryFieldRepository())
	svc, err := NewService(languages, NewMemoryPreferences())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if _, err := svc.Current(context.Background()); !errors.Is(err, registry.ErrDefaultLanguageNotConfigured) {
		t.Fatalf("expected ErrDefaultLanguageNotConfigured, got %v", err)
	}
}

func TestService_Activate(t *testing.T) {
	languages := newTestRegistry(t)
	prefs := NewMemoryPreferences()
	activator := &stubActivator{active: "en"}
	svc, err := NewService(languages, prefs, WithActivator(activator))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	activated, err := svc.Activate(ctx, "fr")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if activated.Code != "fr" {
		t.Fatalf("Activate() = %q", activated.Code)
	}
	if activator.Active() != "fr" {
		t.Fatalf("message catalog language = %q, want fr", activator.Active())
	}
	if code, ok := prefs.Locale(ctx); !ok || code != "fr" {
		t.Fatalf("stored preference = %q, %v", code, ok)
	}
}

func TestService_Activate_UnknownLanguage(t *testing.T) {
	languages := newTestRegistry(t)
	svc, err := NewService(languages, NewMemoryPreferences())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	var notFound *registry.NotFoundError
	if _, err := svc.Activate(context.Background(), "xx"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, err := svc.Activate(context.Background(), ""); !errors.Is(err, ErrLanguageCodeRequired) {
		t.Fatalf("expected ErrLanguageCodeRequired, got %v", err)
	}
}

func TestService_Activate_PersistFailureRollsBack(t *testing.T) {
	languages := newTestRegistry(t)
	activator := &stubActivator{active: "en"}
	svc, err := NewService(languages, failingPrefs{}, WithActivator(activator))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if _, err := svc.Activate(context.Background(), "fr"); err == nil {
		t.Fatal("expected persist failure")
	}
	if activator.Active() != "en" {
		t.Fatalf("message catalog language = %q after rollback, want en", activator.Active())
	}
}

func TestService_Activate_ActivatorFailure(t *testing.T) {
	languages := newTestRegistry(t)
	prefs := NewMemoryPreferences()
	activator := &stubActivator{fail: true}
	svc, err := NewService(languages, prefs, WithActivator(activator))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if _, err := svc.Activate(context.Background(), "fr"); err == nil {
		t.Fatal("expected activation failure")
	}
	if _, ok := prefs.Locale(context.Background()); ok {
		t.Fatal("preference stored despite activation failure")
	}
}

func TestNewService_RequiresPreferences(t *testing.T) {
	if _, err := NewService(newTestRegistry(t), nil); !errors.Is(err, ErrPreferencesRequired) {
		t.Fatalf("expected ErrPreferencesRequired, got %v", err)
	}
}
