package schema

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(ModelSchema{
		Model: "portfolio.project",
		Fields: []FieldSpec{
			{Name: "title", Kind: KindTranslatable},
			{Name: "description", Kind: KindTranslatable},
			{Name: "image", Kind: KindFile},
			{Name: "order", Kind: KindPlain},
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	schema, err := registry.Lookup("portfolio.project")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	kind, ok := schema.Kind("title")
	if !ok || kind != KindTranslatable {
		t.Fatalf("Kind(title) = %v, %v", kind, ok)
	}
	if _, ok := schema.Kind("missing"); ok {
		t.Fatal("Kind(missing) reported ok")
	}

	translatable := schema.TranslatableFields()
	if len(translatable) != 2 || translatable[0] != "title" || translatable[1] != "description" {
		t.Fatalf("TranslatableFields() = %v", translatable)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(ModelSchema{}); !errors.Is(err, ErrModelKeyRequired) {
		t.Fatalf("expected ErrModelKeyRequired, got %v", err)
	}
	if err := registry.Register(ModelSchema{Model: "x"}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}

	err := registry.Register(ModelSchema{
		Model: "x",
		Fields: []FieldSpec{
			{Name: "title", Kind: KindTranslatable},
			{Name: "title", Kind: KindPlain},
		},
	})
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestRegistry_DuplicateModel(t *testing.T) {
	registry := NewRegistry()
	model := ModelSchema{Model: "x", Fields: []FieldSpec{{Name: "title", Kind: KindTranslatable}}}

	if err := registry.Register(model); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(model); !errors.Is(err, ErrModelRegistered) {
		t.Fatalf("expected ErrModelRegistered, got %v", err)
	}
}

func TestRegistry_LookupMissing(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Lookup("nope"); !errors.Is(err, ErrModelNotRegistered) {
		t.Fatalf("expected ErrModelNotRegistered, got %v", err)
	}
}

func TestRegistry_ModelsSorted(t *testing.T) {
	registry := NewRegistry()
	for _, key := range []string{"b.second", "a.first", "c.third"} {
		if err := registry.Register(ModelSchema{Model: key, Fields: []FieldSpec{{Name: "title", Kind: KindTranslatable}}}); err != nil {
			t.Fatalf("Register(%s) error = %v", key, err)
		}
	}

	models := registry.Models()
	want := []string{"a.first", "b.second", "c.third"}
	for i, key := range want {
		if models[i] != key {
			t.Fatalf("Models() = %v, want %v", models, want)
		}
	}
}

func TestRefs_Zero(t *testing.T) {
	if !(ItemRef{}).IsZero() {
		t.Fatal("zero ItemRef not reported zero")
	}
	id := uuid.New()
	ref := ItemRef(id)
	if ref.IsZero() || ref.UUID() != id {
		t.Fatalf("ItemRef round trip failed: %v", ref)
	}

	if !(FileRef{}).IsZero() {
		t.Fatal("zero FileRef not reported zero")
	}
	if (FileRef{Name: "a.png"}).IsZero() {
		t.Fatal("populated FileRef reported zero")
	}
}
