package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-dbtranslation/internal/logging"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/goliatone/go-dbtranslation/registry"
	"github.com/google/uuid"
)

var (
	ErrOwnerModelRequired = errors.New("catalog: owner model identifier is required")
	ErrOwnerIDRequired    = errors.New("catalog: owner id is required")
	// ErrNoTranslatableFields indicates the lifecycle hook ran for a model
	// with no Field registrations. The hook call itself declares the model
	// translatable, so an empty field set is a wiring mistake, not a no-op.
	ErrNoTranslatableFields = errors.New("catalog: model has no registered translatable fields")
	ErrLanguageIDRequired   = errors.New("catalog: language id is required")
)

// Lifecycle provisions Items and blank Translations for owner rows. The hook
// methods are invoked explicitly and synchronously by whatever component
// writes owner rows, inside that component's transaction boundary, so no
// owner row is ever observably persisted without its translation slots.
type Lifecycle interface {
	// InstanceCreated ensures one Item per translatable field and one blank
	// Translation per (Item, registered Language). It returns field name →
	// Item id so the caller can persist the references on its row.
	InstanceCreated(ctx context.Context, model string, ownerID uuid.UUID) (map[string]uuid.UUID, error)
	// InstanceUpdated re-runs the ensure step. Item identity is stable for the
	// lifetime of the owner row; repeated calls never create duplicates.
	InstanceUpdated(ctx context.Context, model string, ownerID uuid.UUID) (map[string]uuid.UUID, error)
	// InstanceDeleted removes the owner's Items, cascading to Translations.
	InstanceDeleted(ctx context.Context, model string, ownerID uuid.UUID) error
	// Backfill creates the blank Translations missing for a language that was
	// registered after Items already existed. It is an administrative repair
	// operation, not part of any per-write path.
	Backfill(ctx context.Context, languageID uuid.UUID) (int, error)
}

// LifecycleOption configures the lifecycle controller at construction time.
type LifecycleOption func(*lifecycle)

// WithLifecycleLogger attaches a logger provider to the controller.
func WithLifecycleLogger(provider interfaces.LoggerProvider) LifecycleOption {
	return func(l *lifecycle) {
		l.logger = logging.CatalogLogger(provider)
	}
}

type lifecycle struct {
	repo      Repository
	languages registry.LanguageRepository
	fields    registry.FieldRepository
	logger    interfaces.Logger
}

// NewLifecycle constructs the lifecycle controller.
func NewLifecycle(repo Repository, languages registry.LanguageRepository, fields registry.FieldRepository, opts ...LifecycleOption) Lifecycle {
	l := &lifecycle{
		repo:      repo,
		languages: languages,
		fields:    fields,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lifecycle) InstanceCreated(ctx context.Context, model string, ownerID uuid.UUID) (map[string]uuid.UUID, error) {
	return l.ensure(ctx, model, ownerID)
}

func (l *lifecycle) InstanceUpdated(ctx context.Context, model string, ownerID uuid.UUID) (map[string]uuid.UUID, error) {
	return l.ensure(ctx, model, ownerID)
}

func (l *lifecycle) ensure(ctx context.Context, model string, ownerID uuid.UUID) (map[string]uuid.UUID, error) {
	if model == "" {
		return nil, ErrOwnerModelRequired
	}
	if ownerID == uuid.Nil {
		return nil, ErrOwnerIDRequired
	}

	fields, err := l.fields.ListForModel(ctx, model)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTranslatableFields, model)
	}

	languages, err := l.languages.List(ctx)
	if err != nil {
		return nil, err
	}

	items, err := l.repo.EnsureInstance(ctx, model, ownerID, fields, languages)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("lifecycle.ensured",
		"model", model,
		"owner_id", ownerID.String(),
		"fields", len(fields),
		"languages", len(languages),
	)
	return items, nil
}

func (l *lifecycle) InstanceDeleted(ctx context.Context, model string, ownerID uuid.UUID) error {
	if model == "" {
		return ErrOwnerModelRequired
	}
	if ownerID == uuid.Nil {
		return ErrOwnerIDRequired
	}

	deleted, err := l.repo.DeleteItemsForOwner(ctx, model, ownerID)
	if err != nil {
		return err
	}
	l.logger.Debug("lifecycle.deleted", "model", model, "owner_id", ownerID.String(), "items", deleted)
	return nil
}

func (l *lifecycle) Backfill(ctx context.Context, languageID uuid.UUID) (int, error) {
	if languageID == uuid.Nil {
		return 0, ErrLanguageIDRequired
	}
	if _, err := l.languages.GetByID(ctx, languageID); err != nil {
		return 0, err
	}

	created, err := l.repo.CreateMissingTranslations(ctx, languageID)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		l.logger.Info("lifecycle.backfill", "language_id", languageID.String(), "created", created)
	}
	return created, nil
}
