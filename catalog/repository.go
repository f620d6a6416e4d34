package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-dbtranslation/registry"
	"github.com/google/uuid"
)

var (
	// ErrBulkWriteUnsupported guards the write paths that would bypass the
	// lifecycle controller. Owner rows created without the lifecycle hook end
	// up with no Items or Translations, so batch creation fails fast instead
	// of silently degrading.
	ErrBulkWriteUnsupported = errors.New("catalog: bulk writes bypass the translation lifecycle")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Repository abstracts storage for Items and Translations. Multi-row writes
// (instance provisioning, owner cascade, backfill) run as single atomic units.
type Repository interface {
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItemsForOwner(ctx context.Context, model string, ownerID uuid.UUID) ([]*Item, error)
	GetTranslation(ctx context.Context, itemID, languageID uuid.UUID) (*Translation, error)
	GetTranslationByID(ctx context.Context, id uuid.UUID) (*Translation, error)
	ListTranslationsForItem(ctx context.Context, itemID uuid.UUID) ([]*Translation, error)

	// EnsureInstance creates the missing Items for (ownerID × fields) and the
	// missing blank Translations for (each Item × languages) in one
	// transaction. Existing rows are reused, making the operation idempotent.
	// The result maps field names to Item ids.
	EnsureInstance(ctx context.Context, model string, ownerID uuid.UUID, fields []*registry.Field, languages []*registry.Language) (map[string]uuid.UUID, error)

	// DeleteItemsForOwner removes the owner's Items and their Translations,
	// mirroring the FK cascade. Returns the number of Items removed.
	DeleteItemsForOwner(ctx context.Context, model string, ownerID uuid.UUID) (int, error)

	// CreateMissingTranslations inserts blank Translations for every Item
	// lacking a row in the given language. Returns the number created.
	CreateMissingTranslations(ctx context.Context, languageID uuid.UUID) (int, error)

	// UpdateTranslationText replaces the text and update stamp of the
	// Translation addressed by (item, language). A zero updatedAt falls back
	// to the current time.
	UpdateTranslationText(ctx context.Context, itemID, languageID uuid.UUID, text string, updatedAt time.Time) (*Translation, error)

	// CountEmpty reports how many Translations in the given language still
	// hold blank text.
	CountEmpty(ctx context.Context, languageID uuid.UUID) (int, error)

	// BulkCreateItems always fails with ErrBulkWriteUnsupported. It exists so
	// hosts wiring a store copy hit an explicit error instead of a missing
	// method and a silently skipped lifecycle.
	BulkCreateItems(ctx context.Context, items []*Item) error
}
