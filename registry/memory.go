package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryLanguageRepository is an in-memory implementation for scaffolding and tests.
type MemoryLanguageRepository struct {
	mu          sync.RWMutex
	languages   map[uuid.UUID]*Language
	codeIndex   map[string]uuid.UUID
	broadcaster *languageBroadcaster
}

// NewMemoryLanguageRepository creates an empty in-memory language repository.
func NewMemoryLanguageRepository() *MemoryLanguageRepository {
	return &MemoryLanguageRepository{
		languages:   make(map[uuid.UUID]*Language),
		codeIndex:   make(map[string]uuid.UUID),
		broadcaster: newLanguageBroadcaster(),
	}
}

func (m *MemoryLanguageRepository) Create(_ context.Context, record *Language) (*Language, error) {
	m.mu.Lock()
	if _, exists := m.codeIndex[record.Code]; exists {
		m.mu.Unlock()
		return nil, &DuplicateError{Resource: "language", Key: record.Code}
	}
	copied := *record
	m.languages[copied.ID] = &copied
	m.codeIndex[copied.Code] = copied.ID
	m.mu.Unlock()

	m.broadcaster.Broadcast(LanguageEvent{Type: LanguageRegistered, Language: copied})
	result := copied
	return &result, nil
}

func (m *MemoryLanguageRepository) GetByID(_ context.Context, id uuid.UUID) (*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.languages[id]
	if !ok {
		return nil, &NotFoundError{Resource: "language", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryLanguageRepository) GetByCode(_ context.Context, code string) (*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.codeIndex[code]
	if !ok {
		return nil, &NotFoundError{Resource: "language", Key: code}
	}
	copied := *m.languages[id]
	return &copied, nil
}

func (m *MemoryLanguageRepository) List(_ context.Context) ([]*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Language, 0, len(m.languages))
	for _, rec := range m.languages {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemoryLanguageRepository) Update(_ context.Context, record *Language) (*Language, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.languages[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "language", Key: record.ID.String()}
	}
	delete(m.codeIndex, existing.Code)
	copied := *record
	m.languages[copied.ID] = &copied
	m.codeIndex[copied.Code] = copied.ID
	result := copied
	return &result, nil
}

func (m *MemoryLanguageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	rec, ok := m.languages[id]
	if !ok {
		m.mu.Unlock()
		return &NotFoundError{Resource: "language", Key: id.String()}
	}
	copied := *rec
	delete(m.codeIndex, rec.Code)
	delete(m.languages, id)
	m.mu.Unlock()

	m.broadcaster.Broadcast(LanguageEvent{Type: LanguageRemoved, Language: copied})
	return nil
}

func (m *MemoryLanguageRepository) SetDefault(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.languages[id]; !ok {
		return &NotFoundError{Resource: "language", Key: id.String()}
	}
	for _, rec := range m.languages {
		rec.IsDefault = rec.ID == id
	}
	return nil
}

func (m *MemoryLanguageRepository) Subscribe(ctx context.Context) (<-chan LanguageEvent, error) {
	return m.broadcaster.Subscribe(ctx)
}

// MemoryFieldRepository is an in-memory implementation for scaffolding and tests.
type MemoryFieldRepository struct {
	mu     sync.RWMutex
	fields map[uuid.UUID]*Field
}

// NewMemoryFieldRepository creates an empty in-memory field repository.
func NewMemoryFieldRepository() *MemoryFieldRepository {
	return &MemoryFieldRepository{
		fields: make(map[uuid.UUID]*Field),
	}
}

func (m *MemoryFieldRepository) Create(_ context.Context, record *Field) (*Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.fields {
		if existing.Model == record.Model && existing.Name == record.Name {
			return nil, &DuplicateError{Resource: "field", Key: record.Model + "." + record.Name}
		}
	}
	copied := *record
	m.fields[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (m *MemoryFieldRepository) GetByID(_ context.Context, id uuid.UUID) (*Field, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.fields[id]
	if !ok {
		return nil, &NotFoundError{Resource: "field", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryFieldRepository) List(_ context.Context) ([]*Field, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Field, 0, len(m.fields))
	for _, rec := range m.fields {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemoryFieldRepository) ListForModel(_ context.Context, model string) ([]*Field, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Field, 0)
	for _, rec := range m.fields {
		if rec.Model == model {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MemoryFieldRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fields[id]; !ok {
		return &NotFoundError{Resource: "field", Key: id.String()}
	}
	delete(m.fields, id)
	return nil
}
