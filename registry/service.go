package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-dbtranslation/internal/logging"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrLanguageCodeRequired    = errors.New("registry: language code is required")
	ErrLanguageCodeInvalid     = errors.New("registry: language code is invalid")
	ErrLanguageDisplayRequired = errors.New("registry: language display name is required")
	ErrModelRequired           = errors.New("registry: owner model identifier is required")
	ErrFieldNameRequired       = errors.New("registry: field name is required")
	// ErrDefaultLanguageNotConfigured indicates no language carries the default
	// flag. Resolution cannot silently pick one, so this is surfaced as a
	// configuration error.
	ErrDefaultLanguageNotConfigured = errors.New("registry: default language not configured")
)

// DuplicateError represents uniqueness violations on reference data.
type DuplicateError struct {
	Resource string
	Key      string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already registered", e.Resource, e.Key)
}

// RegisterLanguageRequest captures the information required to register a language.
type RegisterLanguageRequest struct {
	Code       string
	Display    string
	NativeName *string
	IsDefault  bool
}

// Validate checks the request fields before any store work happens.
func (req RegisterLanguageRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Code, validation.Required.Error(ErrLanguageCodeRequired.Error()),
			validation.By(func(any) error {
				code := strings.TrimSpace(req.Code)
				if code == "" {
					return ErrLanguageCodeRequired
				}
				if len(code) < 2 || len(code) > 35 {
					return ErrLanguageCodeInvalid
				}
				return nil
			})),
		validation.Field(&req.Display, validation.Required.Error(ErrLanguageDisplayRequired.Error())),
	)
}

// RegisterFieldRequest captures the information required to declare a translatable slot.
type RegisterFieldRequest struct {
	Model string
	Name  string
}

// Validate checks the request fields before any store work happens.
func (req RegisterFieldRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Model, validation.Required.Error(ErrModelRequired.Error())),
		validation.Field(&req.Name, validation.Required.Error(ErrFieldNameRequired.Error())),
	)
}

// Service exposes reference-data use cases for languages and translatable fields.
type Service interface {
	RegisterLanguage(ctx context.Context, req RegisterLanguageRequest) (*Language, error)
	Languages(ctx context.Context) ([]*Language, error)
	LanguageByID(ctx context.Context, id uuid.UUID) (*Language, error)
	LanguageByCode(ctx context.Context, code string) (*Language, error)
	DefaultLanguage(ctx context.Context) (*Language, error)
	SetDefaultLanguage(ctx context.Context, id uuid.UUID) error
	RegisterField(ctx context.Context, req RegisterFieldRequest) (*Field, error)
	Fields(ctx context.Context) ([]*Field, error)
	FieldsForModel(ctx context.Context, model string) ([]*Field, error)
	Subscribe(ctx context.Context) (<-chan LanguageEvent, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithIDGenerator overrides the id generator used for new records.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a logger provider to the service.
func WithLogger(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.RegistryLogger(provider)
	}
}

type service struct {
	languages LanguageRepository
	fields    FieldRepository
	id        func() uuid.UUID
	now       func() time.Time
	logger    interfaces.Logger
}

// NewService constructs a registry service with the required repositories.
func NewService(languages LanguageRepository, fields FieldRepository, opts ...ServiceOption) Service {
	s := &service{
		languages: languages,
		fields:    fields,
		id:        uuid.New,
		now:       time.Now,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) RegisterLanguage(ctx context.Context, req RegisterLanguageRequest) (*Language, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := &Language{
		ID:         s.id(),
		Code:       strings.ToLower(strings.TrimSpace(req.Code)),
		Display:    strings.TrimSpace(req.Display),
		NativeName: req.NativeName,
		IsActive:   true,
		CreatedAt:  s.now().UTC(),
	}

	created, err := s.languages.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.languages.SetDefault(ctx, created.ID); err != nil {
			return nil, err
		}
		created.IsDefault = true
	}

	s.logger.Info("language.registered", "code", created.Code, "default", created.IsDefault)
	return created, nil
}

func (s *service) Languages(ctx context.Context) ([]*Language, error) {
	return s.languages.List(ctx)
}

func (s *service) LanguageByID(ctx context.Context, id uuid.UUID) (*Language, error) {
	return s.languages.GetByID(ctx, id)
}

func (s *service) LanguageByCode(ctx context.Context, code string) (*Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrLanguageCodeRequired
	}
	return s.languages.GetByCode(ctx, code)
}

func (s *service) DefaultLanguage(ctx context.Context) (*Language, error) {
	records, err := s.languages.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.IsDefault {
			return record, nil
		}
	}
	return nil, ErrDefaultLanguageNotConfigured
}

func (s *service) SetDefaultLanguage(ctx context.Context, id uuid.UUID) error {
	if err := s.languages.SetDefault(ctx, id); err != nil {
		return err
	}
	s.logger.Info("language.default_changed", "language_id", id.String())
	return nil
}

func (s *service) RegisterField(ctx context.Context, req RegisterFieldRequest) (*Field, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := &Field{
		ID:        s.id(),
		Model:     strings.TrimSpace(req.Model),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: s.now().UTC(),
	}

	created, err := s.fields.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("field.registered", "model", created.Model, "field", created.Name)
	return created, nil
}

func (s *service) Fields(ctx context.Context) ([]*Field, error) {
	return s.fields.List(ctx)
}

func (s *service) FieldsForModel(ctx context.Context, model string) ([]*Field, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, ErrModelRequired
	}
	return s.fields.ListForModel(ctx, model)
}

func (s *service) Subscribe(ctx context.Context) (<-chan LanguageEvent, error) {
	return s.languages.Subscribe(ctx)
}
