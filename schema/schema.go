// Package schema holds static per-model field descriptors. Owner models are
// described once at registration time; the resolution engine branches on the
// declared field kind instead of inspecting runtime types.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrModelKeyRequired = errors.New("schema: model key is required")
	ErrNoFields         = errors.New("schema: at least one field is required")
	ErrDuplicateField   = errors.New("schema: duplicate field name")
	// ErrModelNotRegistered indicates a resolution touched a model that was
	// never described. Registration is mandatory; guessing kinds at runtime
	// would reintroduce the introspection this package exists to remove.
	ErrModelNotRegistered = errors.New("schema: model not registered")
	ErrModelRegistered    = errors.New("schema: model already registered")
)

// FieldKind classifies how the resolution engine treats a field value.
type FieldKind string

const (
	// KindPlain passes the value through unchanged.
	KindPlain FieldKind = "plain"
	// KindTranslatable marks a field whose value is an ItemRef resolved to
	// per-language text.
	KindTranslatable FieldKind = "translatable"
	// KindRelation marks a reference to another registered owner instance.
	KindRelation FieldKind = "relation"
	// KindFile marks a file or image handle emitted as a descriptor mapping.
	KindFile FieldKind = "file"
)

// FieldSpec pairs a field name with its declared kind.
type FieldSpec struct {
	Name string
	Kind FieldKind
}

// ModelSchema describes the declared fields of one owner model.
type ModelSchema struct {
	Model  string
	Fields []FieldSpec
}

// Kind returns the declared kind for a field name.
func (m ModelSchema) Kind(name string) (FieldKind, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field.Kind, true
		}
	}
	return "", false
}

// TranslatableFields returns the names of fields declared translatable, in
// declaration order.
func (m ModelSchema) TranslatableFields() []string {
	out := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		if field.Kind == KindTranslatable {
			out = append(out, field.Name)
		}
	}
	return out
}

// Instance is the contract owner rows implement to participate in lifecycle
// and resolution. FieldValue reports ok=false for null/absent values, which
// resolution omits from its output.
type Instance interface {
	SchemaModel() string
	InstanceID() uuid.UUID
	FieldValue(name string) (any, bool)
}

// ItemRef is the value a translatable field carries: the id of the Item row
// anchoring that slot's per-language translations.
type ItemRef uuid.UUID

// UUID unwraps the reference.
func (r ItemRef) UUID() uuid.UUID { return uuid.UUID(r) }

// IsZero reports whether the reference points at nothing.
func (r ItemRef) IsZero() bool { return uuid.UUID(r) == uuid.Nil }

// FileRef is the value a file field carries.
type FileRef struct {
	Name string
	Path string
	URL  string
}

// IsZero reports whether the handle points at nothing.
func (f FileRef) IsZero() bool { return f == FileRef{} }

// Registry maps model keys to their schemas. Registration happens once during
// application wiring; lookups are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	models map[string]ModelSchema
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]ModelSchema)}
}

// Register records a model schema. Re-registering a model key is an error.
func (r *Registry) Register(model ModelSchema) error {
	key := strings.TrimSpace(model.Model)
	if key == "" {
		return ErrModelKeyRequired
	}
	if len(model.Fields) == 0 {
		return ErrNoFields
	}
	seen := make(map[string]struct{}, len(model.Fields))
	for _, field := range model.Fields {
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, key, field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.models[key]; exists {
		return fmt.Errorf("%w: %s", ErrModelRegistered, key)
	}
	model.Model = key
	r.models[key] = model
	return nil
}

// Lookup returns the schema registered for a model key.
func (r *Registry) Lookup(model string) (ModelSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema, ok := r.models[model]
	if !ok {
		return ModelSchema{}, fmt.Errorf("%w: %s", ErrModelNotRegistered, model)
	}
	return schema, nil
}

// Models returns the registered model keys in sorted order.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.models))
	for key := range r.models {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
