package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-dbtranslation/registry"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	items        map[uuid.UUID]*Item
	translations map[uuid.UUID]*Translation
}

// NewMemoryRepository creates an empty in-memory catalog repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:        make(map[uuid.UUID]*Item),
		translations: make(map[uuid.UUID]*Translation),
	}
}

func (m *MemoryRepository) GetItem(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.items[id]
	if !ok {
		return nil, &NotFoundError{Resource: "item", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryRepository) ListItemsForOwner(_ context.Context, model string, ownerID uuid.UUID) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Item, 0)
	for _, rec := range m.items {
		if rec.Model == model && rec.OwnerID == ownerID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MemoryRepository) GetTranslation(_ context.Context, itemID, languageID uuid.UUID) (*Translation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec := m.findTranslation(itemID, languageID)
	if rec == nil {
		return nil, &NotFoundError{Resource: "translation", Key: itemID.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryRepository) GetTranslationByID(_ context.Context, id uuid.UUID) (*Translation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.translations[id]
	if !ok {
		return nil, &NotFoundError{Resource: "translation", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryRepository) ListTranslationsForItem(_ context.Context, itemID uuid.UUID) ([]*Translation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Translation, 0)
	for _, rec := range m.translations {
		if rec.ItemID == itemID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MemoryRepository) EnsureInstance(_ context.Context, model string, ownerID uuid.UUID, fields []*registry.Field, languages []*registry.Language) (map[string]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	result := make(map[string]uuid.UUID, len(fields))

	byField := make(map[uuid.UUID]*Item)
	for _, item := range m.items {
		if item.Model == model && item.OwnerID == ownerID {
			byField[item.FieldID] = item
		}
	}

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
			m.items[item.ID] = item
		}
		result[field.Name] = item.ID

		for _, language := range languages {
			if m.findTranslation(item.ID, language.ID) != nil {
				continue
			}
			tr := &Translation{
				ID:         uuid.New(),
				ItemID:     item.ID,
				LanguageID: language.ID,
				UpdatedAt:  now,
			}
			m.translations[tr.ID] = tr
		}
	}
	return result, nil
}

func (m *MemoryRepository) DeleteItemsForOwner(_ context.Context, model string, ownerID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for id, item := range m.items {
		if item.Model != model || item.OwnerID != ownerID {
			continue
		}
		for trID, tr := range m.translations {
			if tr.ItemID == id {
				delete(m.translations, trID)
			}
		}
		delete(m.items, id)
		deleted++
	}
	return deleted, nil
}

func (m *MemoryRepository) CreateMissingTranslations(_ context.Context, languageID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	created := 0
	for itemID := range m.items {
		if m.findTranslation(itemID, languageID) != nil {
			continue
		}
		tr := &Translation{
			ID:         uuid.New(),
			ItemID:     itemID,
			LanguageID: languageID,
			UpdatedAt:  now,
		}
		m.translations[tr.ID] = tr
		created++
	}
	return created, nil
}

func (m *MemoryRepository) UpdateTranslationText(_ context.Context, itemID, languageID uuid.UUID, text string, updatedAt time.Time) (*Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.findTranslation(itemID, languageID)
	if rec == nil {
		return nil, &NotFoundError{Resource: "translation", Key: itemID.String()}
	}
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	rec.Text = text
	rec.UpdatedAt = updatedAt
	copied := *rec
	return &copied, nil
}

func (m *MemoryRepository) CountEmpty(_ context.Context, languageID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, rec := range m.translations {
		if rec.LanguageID == languageID && rec.Text == "" {
			count++
		}
	}
	return count, nil
}

// BulkCreateItems always fails so no write path can skip the lifecycle.
func (m *MemoryRepository) BulkCreateItems(context.Context, []*Item) error {
	return ErrBulkWriteUnsupported
}

func (m *MemoryRepository) findTranslation(itemID, languageID uuid.UUID) *Translation {
	for _, rec := range m.translations {
		if rec.ItemID == itemID && rec.LanguageID == languageID {
			return rec
		}
	}
	return nil
}
