package dbtranslation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/goliatone/go-dbtranslation/catalog"
	"github.com/goliatone/go-dbtranslation/registry"
	"github.com/goliatone/go-dbtranslation/schema"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type projectInstance struct {
	id     uuid.UUID
	fields map[string]any
}

func (p *projectInstance) SchemaModel() string   { return "portfolio.project" }
func (p *projectInstance) InstanceID() uuid.UUID { return p.id }

func (p *projectInstance) FieldValue(name string) (any, bool) {
	value, ok := p.fields[name]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func newTestModule(t *testing.T) *Module {
	t.Helper()

	cfg := Config{
		DefaultLanguage: "en",
		Languages: []LanguageConfig{
			{Code: "en", Display: "English"},
			{Code: "fr", Display: "French", NativeName: "Français"},
		},
	}

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := module.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return module
}

func TestModule_SeedIsIdempotent(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	if err := module.Seed(ctx); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	languages, err := module.Registry().Languages(ctx)
	if err != nil {
		t.Fatalf("Languages() error = %v", err)
	}
	if len(languages) != 2 {
		t.Fatalf("%d languages after double seed, want 2", len(languages))
	}

	def, err := module.Registry().DefaultLanguage(ctx)
	if err != nil {
		t.Fatalf("DefaultLanguage() error = %v", err)
	}
	if def.Code != "en" {
		t.Fatalf("default language = %q", def.Code)
	}
}

// Full round trip: declare a translatable model, provision a row, fill in a
// French translation, and resolve the row in both languages.
func TestModule_TranslationRoundTrip(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	if _, err := module.Registry().RegisterField(ctx, registry.RegisterFieldRequest{
		Model: "portfolio.project",
		Name:  "title",
	}); err != nil {
		t.Fatalf("RegisterField() error = %v", err)
	}

	if err := module.Schemas().Register(schema.ModelSchema{
		Model: "portfolio.project",
		Fields: []schema.FieldSpec{
			{Name: "title", Kind: schema.KindTranslatable},
			{Name: "order", Kind: schema.KindPlain},
		},
	}); err != nil {
		t.Fatalf("Schemas().Register() error = %v", err)
	}

	ownerID := uuid.New()
	items, err := module.Lifecycle().InstanceCreated(ctx, "portfolio.project", ownerID)
	if err != nil {
		t.Fatalf("InstanceCreated() error = %v", err)
	}

	fr, err := module.Registry().LanguageByCode(ctx, "fr")
	if err != nil {
		t.Fatalf("LanguageByCode(fr) error = %v", err)
	}
	en, err := module.Registry().LanguageByCode(ctx, "en")
	if err != nil {
		t.Fatalf("LanguageByCode(en) error = %v", err)
	}

	if _, err := module.Translations().SetText(ctx, catalog.SetTextRequest{
		ItemID:     items["title"],
		LanguageID: fr.ID,
		Text:       "Maison",
	}); err != nil {
		t.Fatalf("SetText() error = %v", err)
	}

	project := &projectInstance{
		id: ownerID,
		fields: map[string]any{
			"title": schema.ItemRef(items["title"]),
			"order": 1,
		},
	}

	frView, err := module.Resolver().Resolve(ctx, project, fr, false)
	if err != nil {
		t.Fatalf("Resolve(fr) error = %v", err)
	}
	if frView["title"] != "Maison" || frView["order"] != 1 {
		t.Fatalf("Resolve(fr) = %v", frView)
	}

	enView, err := module.Resolver().Resolve(ctx, project, en, false)
	if err != nil {
		t.Fatalf("Resolve(en) error = %v", err)
	}
	if enView["title"] != "" {
		t.Fatalf("Resolve(en) title = %v, want empty", enView["title"])
	}
}

func TestModule_Sessions(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	current, err := module.Sessions().Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.Code != "en" {
		t.Fatalf("Current() = %q, want default en", current.Code)
	}

	if _, err := module.Sessions().Activate(ctx, "fr"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	current, err = module.Sessions().Current(ctx)
	if err != nil {
		t.Fatalf("Current() after activate error = %v", err)
	}
	if current.Code != "fr" {
		t.Fatalf("Current() = %q, want fr", current.Code)
	}
}

func TestModule_WithDatabase(t *testing.T) {
	sqldb, err := sql.Open("sqlite3", "file:module_"+uuid.NewString()+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db, err := NewBunDB(sqldb, "sqlite3")
	if err != nil {
		t.Fatalf("NewBunDB() error = %v", err)
	}
	ctx := context.Background()
	for _, model := range []any{(*registry.Language)(nil), (*registry.Field)(nil), (*catalog.Item)(nil), (*catalog.Translation)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	cfg := Config{
		DefaultLanguage: "en",
		Languages: []LanguageConfig{
			{Code: "en", Display: "English"},
			{Code: "fr", Display: "French"},
		},
	}
	module, err := New(cfg, WithDB(db))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := module.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if err := module.Seed(ctx); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	if _, err := module.Registry().RegisterField(ctx, registry.RegisterFieldRequest{Model: "portfolio.project", Name: "title"}); err != nil {
		t.Fatalf("RegisterField() error = %v", err)
	}

	ownerID := uuid.New()
	items, err := module.Lifecycle().InstanceCreated(ctx, "portfolio.project", ownerID)
	if err != nil {
		t.Fatalf("InstanceCreated() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("%d items provisioned, want 1", len(items))
	}

	translations, err := module.Translations().ListForOwner(ctx, "portfolio.project", ownerID)
	if err != nil {
		t.Fatalf("ListForOwner() error = %v", err)
	}
	if len(translations) != 2 {
		t.Fatalf("%d translations provisioned, want 2", len(translations))
	}
}

// Cache.Enabled without WithCache builds the module's own cache service with
// the configured TTL; cached reference reads stay consistent across calls.
func TestModule_WithDatabase_CacheEnabled(t *testing.T) {
	sqldb, err := sql.Open("sqlite3", "file:module_cache_"+uuid.NewString()+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db, err := NewBunDB(sqldb, "sqlite3")
	if err != nil {
		t.Fatalf("NewBunDB() error = %v", err)
	}
	ctx := context.Background()
	for _, model := range []any{(*registry.Language)(nil), (*registry.Field)(nil), (*catalog.Item)(nil), (*catalog.Translation)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	cfg := Config{
		DefaultLanguage: "en",
		Languages: []LanguageConfig{
			{Code: "en", Display: "English"},
			{Code: "fr", Display: "French"},
		},
		Cache: CacheConfig{Enabled: true, TTL: time.Minute},
	}
	module, err := New(cfg, WithDB(db))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := module.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		lang, err := module.Registry().LanguageByCode(ctx, "fr")
		if err != nil {
			t.Fatalf("LanguageByCode() read %d error = %v", i, err)
		}
		if lang.Code != "fr" {
			t.Fatalf("LanguageByCode() read %d = %q", i, lang.Code)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLanguage = "xx"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}
