package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goliatone/go-dbtranslation/registry"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists Items and Translations using a Bun-backed database.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository constructs a Bun-backed catalog repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	var record Item
	if err := r.db.NewSelect().Model(&record).Where("itm.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "item", Key: id.String()}
		}
		return nil, err
	}
	return &record, nil
}

func (r *BunRepository) ListItemsForOwner(ctx context.Context, model string, ownerID uuid.UUID) ([]*Item, error) {
	var records []*Item
	if err := r.db.NewSelect().
		Model(&records).
		Where("model = ? AND owner_id = ?", model, ownerID).
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *BunRepository) GetTranslation(ctx context.Context, itemID, languageID uuid.UUID) (*Translation, error) {
	var record Translation
	if err := r.db.NewSelect().
		Model(&record).
		Where("item_id = ? AND language_id = ?", itemID, languageID).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "translation", Key: itemID.String()}
		}
		return nil, err
	}
	return &record, nil
}

func (r *BunRepository) GetTranslationByID(ctx context.Context, id uuid.UUID) (*Translation, error) {
	var record Translation
	if err := r.db.NewSelect().Model(&record).Where("trn.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "translation", Key: id.String()}
		}
		return nil, err
	}
	return &record, nil
}

func (r *BunRepository) ListTranslationsForItem(ctx context.Context, itemID uuid.UUID) ([]*Translation, error) {
	var records []*Translation
	if err := r.db.NewSelect().
		Model(&records).
		Where("item_id = ?", itemID).
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *BunRepository) EnsureInstance(ctx context.Context, model string, ownerID uuid.UUID, fields []*registry.Field, languages []*registry.Language) (map[string]uuid.UUID, error) {
	result := make(map[string]uuid.UUID, len(fields))

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()

		var existing []*Item
		if err := tx.NewSelect().
			Model(&existing).
			Where("model = ? AND owner_id = ?", model, ownerID).
			Scan(ctx); err != nil {
			return err
		}
		byField := make(map[uuid.UUID]*Item, len(existing))
		for _, item := range existing {
			byField[item.FieldID] = item
		}

		newItems := make([]*Item, 0, len(fields))
		itemIDs := make([]uuid.UUID, 0, len(fields))
		for _, field := range fields {
			item, ok := byField[field.ID]
			if !ok {
				item = &Item{
					ID:        uuid.New(),
					FieldID:   field.ID,
					OwnerID:   ownerID,
					Model:     model,
					CreatedAt: now,
				}
				newItems = append(newItems, item)
			}
			result[field.Name] = item.ID
			itemIDs = append(itemIDs, item.ID)
		}
		if len(newItems) > 0 {
			if _, err := tx.NewInsert().Model(&newItems).Exec(ctx); err != nil {
				return err
			}
		}

		if len(languages) == 0 || len(itemIDs) == 0 {
			return nil
		}

		var existingTranslations []*Translation
		if err := tx.NewSelect().
			Model(&existingTranslations).
			Where("item_id IN (?)", bun.In(itemIDs)).
			Scan(ctx); err != nil {
			return err
		}
		covered := make(map[uuid.UUID]map[uuid.UUID]bool, len(itemIDs))
		for _, tr := range existingTranslations {
			if covered[tr.ItemID] == nil {
				covered[tr.ItemID] = make(map[uuid.UUID]bool)
			}
			covered[tr.ItemID][tr.LanguageID] = true
		}

		blanks := make([]*Translation, 0, len(itemIDs)*len(languages))
		for _, itemID := range itemIDs {
			for _, language := range languages {
				if covered[itemID][language.ID] {
					continue
				}
				blanks = append(blanks, &Translation{
					ID:         uuid.New(),
					ItemID:     itemID,
					LanguageID: language.ID,
					UpdatedAt:  now,
				})
			}
		}
		if len(blanks) > 0 {
			if _, err := tx.NewInsert().Model(&blanks).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BunRepository) DeleteItemsForOwner(ctx context.Context, model string, ownerID uuid.UUID) (int, error) {
	deleted := 0
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var items []*Item
		if err := tx.NewSelect().
			Model(&items).
			Where("model = ? AND owner_id = ?", model, ownerID).
			Scan(ctx); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		itemIDs := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID)
		}
		// Translations cascade with their Item in SQL; the explicit delete
		// keeps stores without FK enforcement consistent.
		if _, err := tx.NewDelete().
			Model((*Translation)(nil)).
			Where("item_id IN (?)", bun.In(itemIDs)).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*Item)(nil)).
			Where("id IN (?)", bun.In(itemIDs)).
			Exec(ctx); err != nil {
			return err
		}
		deleted = len(items)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *BunRepository) CreateMissingTranslations(ctx context.Context, languageID uuid.UUID) (int, error) {
	created := 0
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()

		var missing []*Item
		if err := tx.NewSelect().
			Model(&missing).
			Where("itm.id NOT IN (SELECT item_id FROM dbtr_translations WHERE language_id = ?)", languageID).
			Scan(ctx); err != nil {
			return err
		}
		if len(missing) == 0 {
			return nil
		}
		blanks := make([]*Translation, 0, len(missing))
		for _, item := range missing {
			blanks = append(blanks, &Translation{
				ID:         uuid.New(),
				ItemID:     item.ID,
				LanguageID: languageID,
				UpdatedAt:  now,
			})
		}
		if _, err := tx.NewInsert().Model(&blanks).Exec(ctx); err != nil {
			return err
		}
		created = len(blanks)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *BunRepository) UpdateTranslationText(ctx context.Context, itemID, languageID uuid.UUID, text string, updatedAt time.Time) (*Translation, error) {
	record, err := r.GetTranslation(ctx, itemID, languageID)
	if err != nil {
		return nil, err
	}
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	record.Text = text
	record.UpdatedAt = updatedAt
	if _, err := r.db.NewUpdate().
		Model(record).
		Column("text", "updated_at").
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRepository) CountEmpty(ctx context.Context, languageID uuid.UUID) (int, error) {
	return r.db.NewSelect().
		Model((*Translation)(nil)).
		Where("language_id = ? AND text = ''", languageID).
		Count(ctx)
}

// BulkCreateItems always fails: Items only come into existence through
// EnsureInstance so no owner row can skip its Translations.
func (r *BunRepository) BulkCreateItems(context.Context, []*Item) error {
	return ErrBulkWriteUnsupported
}
