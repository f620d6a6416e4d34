// Package dbtranslation keeps user-authored database content available in
// multiple languages. It registers languages and translatable fields,
// provisions translation storage alongside owner rows, resolves instances
// into language-specific mappings, and tracks each caller's working language.
package dbtranslation

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-dbtranslation/catalog"
	"github.com/goliatone/go-dbtranslation/internal/logging"
	"github.com/goliatone/go-dbtranslation/internal/logging/gologger"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/goliatone/go-dbtranslation/registry"
	"github.com/goliatone/go-dbtranslation/resolver"
	"github.com/goliatone/go-dbtranslation/schema"
	"github.com/goliatone/go-dbtranslation/session"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// RegistryService exports the reference-data service contract.
type RegistryService = registry.Service

// Lifecycle exports the item/translation lifecycle contract.
type Lifecycle = catalog.Lifecycle

// TranslationService exports the translation edit contract.
type TranslationService = catalog.TranslationService

// ResolverService exports the resolution engine contract.
type ResolverService = resolver.Service

// SessionService exports the language-context contract.
type SessionService = session.Service

// SchemaRegistry exports the model schema registry.
type SchemaRegistry = schema.Registry

// Module is the top level runtime facade. Construct it with New, then reach
// individual services through the accessors.
type Module struct {
	config       Config
	provider     interfaces.LoggerProvider
	languages    registry.LanguageRepository
	fields       registry.FieldRepository
	registry     registry.Service
	schemas      *schema.Registry
	catalogRepo  catalog.Repository
	lifecycle    catalog.Lifecycle
	translations catalog.TranslationService
	resolver     resolver.Service
	sessions     session.Service
}

// Option overrides a default binding during construction.
type Option func(*moduleDeps)

type moduleDeps struct {
	db            *bun.DB
	provider      interfaces.LoggerProvider
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	prefs         session.Preferences
	activator     session.Activator
}

// WithDB binds a bun database. Without it the module runs on in-memory
// stores, which suits tests and prototyping.
func WithDB(db *bun.DB) Option {
	return func(d *moduleDeps) {
		d.db = db
	}
}

// WithLoggerProvider overrides the logger provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *moduleDeps) {
		d.provider = provider
	}
}

// WithCache supplies the cache service used for reference-data reads when
// Config.Cache.Enabled is set. Without it the module builds its own service
// from Config.Cache.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(d *moduleDeps) {
		d.cacheService = service
		d.keySerializer = serializer
	}
}

// WithPreferences binds the per-caller language preference store. Defaults to
// an in-memory store.
func WithPreferences(prefs session.Preferences) Option {
	return func(d *moduleDeps) {
		d.prefs = prefs
	}
}

// WithActivator binds the message-catalog activator used during language
// switches.
func WithActivator(activator session.Activator) Option {
	return func(d *moduleDeps) {
		d.activator = activator
	}
}

// New constructs a module from the given configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &moduleDeps{}
	for _, opt := range opts {
		opt(deps)
	}

	provider := deps.provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	cacheService := deps.cacheService
	keySerializer := deps.keySerializer
	if cfg.Cache.Enabled && cacheService == nil {
		cacheCfg := cache.DefaultConfig()
		if cfg.Cache.TTL > 0 {
			cacheCfg.TTL = cfg.Cache.TTL
		}
		built, err := cache.NewCacheService(cacheCfg)
		if err != nil {
			return nil, err
		}
		cacheService = built
	}
	if cacheService != nil && keySerializer == nil {
		keySerializer = cache.NewDefaultKeySerializer()
	}

	var (
		languages   registry.LanguageRepository
		fields      registry.FieldRepository
		catalogRepo catalog.Repository
	)
	if deps.db != nil {
		if cfg.Cache.Enabled && cacheService != nil {
			languages = registry.NewBunLanguageRepositoryWithCache(deps.db, cacheService, keySerializer)
			fields = registry.NewBunFieldRepositoryWithCache(deps.db, cacheService, keySerializer)
		} else {
			languages = registry.NewBunLanguageRepository(deps.db)
			fields = registry.NewBunFieldRepository(deps.db)
		}
		catalogRepo = catalog.NewBunRepository(deps.db)
	} else {
		languages = registry.NewMemoryLanguageRepository()
		fields = registry.NewMemoryFieldRepository()
		catalogRepo = catalog.NewMemoryRepository()
	}

	registrySvc := registry.NewService(languages, fields, registry.WithLogger(provider))
	schemas := schema.NewRegistry()
	lifecycle := catalog.NewLifecycle(catalogRepo, languages, fields, catalog.WithLifecycleLogger(provider))
	translations := catalog.NewTranslationService(catalogRepo, catalog.WithTranslationLogger(provider))
	resolverSvc := resolver.NewService(schemas, catalogRepo, resolver.WithLogger(provider))

	prefs := deps.prefs
	if prefs == nil {
		prefs = session.NewMemoryPreferences()
	}

	activator := deps.activator
	if activator == nil && cfg.Messages.Dir != "" {
		fallback := cfg.DefaultLanguage
		if fallback == "" {
			fallback = "en"
		}
		built, err := session.NewBundleActivator(fallback, cfg.Messages.Dir, cfg.Messages.Codes...)
		if err != nil {
			return nil, err
		}
		activator = built
	}

	sessionOpts := []session.ServiceOption{session.WithLogger(provider)}
	if activator != nil {
		sessionOpts = append(sessionOpts, session.WithActivator(activator))
	}
	sessions, err := session.NewService(registrySvc, prefs, sessionOpts...)
	if err != nil {
		return nil, err
	}

	return &Module{
		config:       cfg,
		provider:     provider,
		languages:    languages,
		fields:       fields,
		registry:     registrySvc,
		schemas:      schemas,
		catalogRepo:  catalogRepo,
		lifecycle:    lifecycle,
		translations: translations,
		resolver:     resolverSvc,
		sessions:     sessions,
	}, nil
}

// Seed registers the configured languages, skipping codes that already exist.
// The configured default language receives the default flag. Seed is
// idempotent so hosts can call it on every startup.
func (m *Module) Seed(ctx context.Context) error {
	logger := logging.ModuleLogger(m.provider, "")
	for _, lang := range m.config.Languages {
		if _, err := m.registry.LanguageByCode(ctx, lang.Code); err == nil {
			logger.Debug("seed.language_exists", "code", lang.Code)
			continue
		} else {
			var notFound *registry.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
		}

		req := registry.RegisterLanguageRequest{
			Code:      lang.Code,
			Display:   lang.Display,
			IsDefault: strings.EqualFold(strings.TrimSpace(lang.Code), strings.TrimSpace(m.config.DefaultLanguage)),
		}
		if lang.NativeName != "" {
			native := lang.NativeName
			req.NativeName = &native
		}

		if _, err := m.registry.RegisterLanguage(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// Registry returns the language and field reference-data service.
func (m *Module) Registry() RegistryService {
	return m.registry
}

// Schemas returns the model schema registry used by the resolver.
func (m *Module) Schemas() *SchemaRegistry {
	return m.schemas
}

// Lifecycle returns the item/translation lifecycle controller.
func (m *Module) Lifecycle() Lifecycle {
	return m.lifecycle
}

// Translations returns the translation edit service.
func (m *Module) Translations() TranslationService {
	return m.translations
}

// Resolver returns the resolution engine.
func (m *Module) Resolver() ResolverService {
	return m.resolver
}

// Sessions returns the language-context service.
func (m *Module) Sessions() SessionService {
	return m.sessions
}

// LoggerProvider exposes the provider so hosts can reuse the module's logger
// configuration for their own components.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}
