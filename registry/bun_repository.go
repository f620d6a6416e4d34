package registry

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunLanguageRepository implements LanguageRepository with optional caching.
// Language rows are operator-curated reference data, so cross-request caching
// is safe here in a way it never is for translation text.
type BunLanguageRepository struct {
	db          *bun.DB
	repo        repository.Repository[*Language]
	broadcaster *languageBroadcaster
}

// NewBunLanguageRepository creates a language repository without caching.
func NewBunLanguageRepository(db *bun.DB) *BunLanguageRepository {
	return NewBunLanguageRepositoryWithCache(db, nil, nil)
}

// NewBunLanguageRepositoryWithCache creates a language repository with caching services.
func NewBunLanguageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLanguageRepository {
	base := NewLanguageRepository(db)
	return &BunLanguageRepository{
		db:          db,
		repo:        wrapWithCache(base, cacheService, keySerializer),
		broadcaster: newLanguageBroadcaster(),
	}
}

func (r *BunLanguageRepository) Create(ctx context.Context, record *Language) (*Language, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	r.broadcaster.Broadcast(LanguageEvent{Type: LanguageRegistered, Language: *created})
	return created, nil
}

func (r *BunLanguageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Language, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "language", id.String())
	}
	return result, nil
}

func (r *BunLanguageRepository) GetByCode(ctx context.Context, code string) (*Language, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "language", code)
	}
	return result, nil
}

func (r *BunLanguageRepository) List(ctx context.Context) ([]*Language, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunLanguageRepository) Update(ctx context.Context, record *Language) (*Language, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "language", record.ID.String())
	}
	return updated, nil
}

func (r *BunLanguageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Language{ID: id}); err != nil {
		return err
	}
	r.broadcaster.Broadcast(LanguageEvent{Type: LanguageRemoved, Language: *record})
	return nil
}

// SetDefault swaps the default flag inside one transaction so readers never
// observe zero or two defaults.
func (r *BunLanguageRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*Language)(nil)).
			Set("is_default = ?", false).
			Where("is_default = ?", true).
			Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewUpdate().
			Model((*Language)(nil)).
			Set("is_default = ?", true).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Resource: "language", Key: id.String()}
		}
		return nil
	})
}

func (r *BunLanguageRepository) Subscribe(ctx context.Context) (<-chan LanguageEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

// BunFieldRepository implements FieldRepository on top of bun.
type BunFieldRepository struct {
	db   *bun.DB
	repo repository.Repository[*Field]
}

// NewBunFieldRepository creates a field repository.
func NewBunFieldRepository(db *bun.DB) *BunFieldRepository {
	return NewBunFieldRepositoryWithCache(db, nil, nil)
}

// NewBunFieldRepositoryWithCache creates a field repository with caching services.
func NewBunFieldRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunFieldRepository {
	base := NewFieldRepository(db)
	return &BunFieldRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunFieldRepository) Create(ctx context.Context, record *Field) (*Field, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunFieldRepository) GetByID(ctx context.Context, id uuid.UUID) (*Field, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "field", id.String())
	}
	return result, nil
}

func (r *BunFieldRepository) List(ctx context.Context) ([]*Field, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunFieldRepository) ListForModel(ctx context.Context, model string) ([]*Field, error) {
	var records []*Field
	if err := r.db.NewSelect().
		Model(&records).
		Where("model = ?", model).
		Order("field_name ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *BunFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Field{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
