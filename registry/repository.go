package registry

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LanguageRepository abstracts storage operations for Language reference rows.
type LanguageRepository interface {
	Create(ctx context.Context, record *Language) (*Language, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Language, error)
	GetByCode(ctx context.Context, code string) (*Language, error)
	List(ctx context.Context) ([]*Language, error)
	Update(ctx context.Context, record *Language) (*Language, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDefault atomically clears the previous default flag and sets the new
	// one, preserving the single-default invariant.
	SetDefault(ctx context.Context, id uuid.UUID) error
	// Subscribe delivers language registration events until the context is
	// cancelled. Late subscribers only observe subsequent events.
	Subscribe(ctx context.Context) (<-chan LanguageEvent, error)
}

// FieldRepository abstracts storage operations for Field reference rows.
type FieldRepository interface {
	Create(ctx context.Context, record *Field) (*Field, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Field, error)
	List(ctx context.Context) ([]*Field, error)
	ListForModel(ctx context.Context, model string) ([]*Field, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

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

// NewLanguageRepository creates a generic repository for Language entities.
func NewLanguageRepository(db *bun.DB) repository.Repository[*Language] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Language]{
		NewRecord: func() *Language { return &Language{} },
		GetID: func(l *Language) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Language, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Language) string {
			return l.Code
		},
	})
}

// NewFieldRepository creates a generic repository for Field entities.
func NewFieldRepository(db *bun.DB) repository.Repository[*Field] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Field]{
		NewRecord: func() *Field { return &Field{} },
		GetID: func(f *Field) uuid.UUID {
			return f.ID
		},
		SetID: func(f *Field, id uuid.UUID) {
			f.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(f *Field) string {
			return f.ID.String()
		},
	})
}
