// Package resolver reconstitutes translated, template-ready mappings from
// owner instances. Resolution is pure read-only computation: translation
// lookups are point reads keyed by (Item, Language), memoized per call.
package resolver

import (
	"context"
	"errors"

	"github.com/goliatone/go-dbtranslation/catalog"
	"github.com/goliatone/go-dbtranslation/internal/logging"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/goliatone/go-dbtranslation/registry"
	"github.com/goliatone/go-dbtranslation/schema"
	"github.com/google/uuid"
)

var (
	ErrInstanceRequired = errors.New("resolver: instance is required")
	// ErrLanguageRequired indicates resolution was attempted without a usable
	// language. Silently picking one would leak wrong-language content, so
	// this fails fast instead of defaulting.
	ErrLanguageRequired = errors.New("resolver: language is required")
)

// Service resolves owner instances into plain mappings where translatable
// slots carry resolved text, file handles carry descriptor mappings, and
// relations are either expanded or passed through as identifiers.
type Service interface {
	Resolve(ctx context.Context, instance schema.Instance, language *registry.Language, depth bool) (map[string]any, error)
	// ResolveAll applies Resolve to every element, preserving input order.
	ResolveAll(ctx context.Context, instances []schema.Instance, language *registry.Language, depth bool) ([]map[string]any, error)
}

// ServiceOption configures the resolver at construction time.
type ServiceOption func(*service)

// WithLogger attaches a logger provider to the resolver.
func WithLogger(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.ResolverLogger(provider)
	}
}

type service struct {
	schemas *schema.Registry
	repo    catalog.Repository
	logger  interfaces.Logger
}

// NewService constructs a resolver over the given schema registry and catalog store.
func NewService(schemas *schema.Registry, repo catalog.Repository, opts ...ServiceOption) Service {
	s := &service{
		schemas: schemas,
		repo:    repo,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type visitKey struct {
	model string
	id    uuid.UUID
}

// walkState carries the per-call translation cache and the set of instances
// on the current resolution path. Both live exactly as long as one Resolve
// call: translation text may change between requests, so nothing is cached
// across calls.
type walkState struct {
	cache   map[visitKey]string
	visited map[visitKey]bool
}

func (s *service) Resolve(ctx context.Context, instance schema.Instance, language *registry.Language, depth bool) (map[string]any, error) {
	if instance == nil {
		return nil, ErrInstanceRequired
	}
	if language == nil {
		return nil, ErrLanguageRequired
	}
	walk := &walkState{
		cache:   make(map[visitKey]string),
		visited: make(map[visitKey]bool),
	}
	return s.resolve(ctx, instance, language, depth, walk)
}

func (s *service) ResolveAll(ctx context.Context, instances []schema.Instance, language *registry.Language, depth bool) ([]map[string]any, error) {
	if language == nil {
		return nil, ErrLanguageRequired
	}
	out := make([]map[string]any, 0, len(instances))
	for _, instance := range instances {
		resolved, err := s.Resolve(ctx, instance, language, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (s *service) resolve(ctx context.Context, instance schema.Instance, language *registry.Language, depth bool, walk *walkState) (map[string]any, error) {
	model, err := s.schemas.Lookup(instance.SchemaModel())
	if err != nil {
		return nil, err
	}

	key := visitKey{model: model.Model, id: instance.InstanceID()}
	walk.visited[key] = true
	defer delete(walk.visited, key)

	out := make(map[string]any, len(model.Fields))
	for _, field := range model.Fields {
		value, ok := instance.FieldValue(field.Name)
		if !ok || value == nil {
			continue
		}

		switch field.Kind {
		case schema.KindTranslatable:
			ref, ok := value.(schema.ItemRef)
			if !ok || ref.IsZero() {
				continue
			}
			text, err := s.lookupText(ctx, ref, language, walk)
			if err != nil {
				return nil, err
			}
			out[field.Name] = text

		case schema.KindRelation:
			related, ok := value.(schema.Instance)
			if !ok {
				out[field.Name] = value
				continue
			}
			relatedKey := visitKey{model: related.SchemaModel(), id: related.InstanceID()}
			if !depth || walk.visited[relatedKey] {
				// Revisits along the current path mark a cycle; the raw
				// identifier stands in for the already-expanding instance.
				out[field.Name] = related.InstanceID().String()
				continue
			}
			nested, err := s.resolve(ctx, related, language, depth, walk)
			if err != nil {
				return nil, err
			}
			out[field.Name] = nested

		case schema.KindFile:
			handle, ok := value.(schema.FileRef)
			if !ok || handle.IsZero() {
				out[field.Name] = ""
				continue
			}
			out[field.Name] = map[string]any{
				"name": handle.Name,
				"path": handle.Path,
				"url":  handle.URL,
			}

		default:
			out[field.Name] = value
		}
	}
	return out, nil
}

// lookupText returns the stored text for (item, language), or the empty
// string when no Translation row exists. Partial translation coverage is an
// expected steady state and never blocks resolution of sibling fields.
func (s *service) lookupText(ctx context.Context, ref schema.ItemRef, language *registry.Language, walk *walkState) (string, error) {
	key := visitKey{model: language.Code, id: ref.UUID()}
	if text, ok := walk.cache[key]; ok {
		return text, nil
	}

	record, err := s.repo.GetTranslation(ctx, ref.UUID(), language.ID)
	if err != nil {
		var notFound *catalog.NotFoundError
		if errors.As(err, &notFound) {
			walk.cache[key] = ""
			return "", nil
		}
		return "", err
	}

	walk.cache[key] = record.Text
	return record.Text, nil
}
