package catalog

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-dbtranslation/internal/logging"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/google/uuid"
)

// ErrTranslationIDRequired guards by-id translation edits.
var ErrTranslationIDRequired = errors.New("catalog: translation id is required")

// SetTextRequest captures a text-only translation edit.
type SetTextRequest struct {
	ItemID     uuid.UUID
	LanguageID uuid.UUID
	Text       string
}

// Validate ensures the translation is addressable. Empty text is legal: it is
// how editors clear a translation back to the missing state.
func (req SetTextRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ItemID, validation.By(func(any) error {
			if req.ItemID == uuid.Nil {
				return validation.NewError("dbtranslation.set_text.item_required", "item id is required")
			}
			return nil
		})),
		validation.Field(&req.LanguageID, validation.By(func(any) error {
			if req.LanguageID == uuid.Nil {
				return validation.NewError("dbtranslation.set_text.language_required", "language id is required")
			}
			return nil
		})),
	)
}

// TranslationService is the administrative edit surface: text-only access to
// Translation rows scoped by owner instance. Items are never edited directly.
// Rows can be addressed by (item, language) or directly by translation id,
// matching how an edit form carries row ids back on submit.
type TranslationService interface {
	SetText(ctx context.Context, req SetTextRequest) (*Translation, error)
	SetTextByID(ctx context.Context, translationID uuid.UUID, text string) (*Translation, error)
	GetText(ctx context.Context, itemID, languageID uuid.UUID) (string, error)
	ListForOwner(ctx context.Context, model string, ownerID uuid.UUID) ([]*Translation, error)
	CountEmpty(ctx context.Context, languageID uuid.UUID) (int, error)
}

// TranslationOption configures the translation service.
type TranslationOption func(*translationService)

// WithTranslationLogger attaches a logger provider to the service.
func WithTranslationLogger(provider interfaces.LoggerProvider) TranslationOption {
	return func(s *translationService) {
		s.logger = logging.CatalogLogger(provider)
	}
}

// WithClock overrides the clock used for update stamps.
func WithClock(clock func() time.Time) TranslationOption {
	return func(s *translationService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

type translationService struct {
	repo   Repository
	logger interfaces.Logger
	clock  func() time.Time
}

// NewTranslationService constructs the translation edit service.
func NewTranslationService(repo Repository, opts ...TranslationOption) TranslationService {
	s := &translationService{
		repo:   repo,
		logger: logging.NoOp(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *translationService) SetText(ctx context.Context, req SetTextRequest) (*Translation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTranslationText(ctx, req.ItemID, req.LanguageID, req.Text, s.clock().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("translation.text_updated",
		"item_id", req.ItemID.String(),
		"language_id", req.LanguageID.String(),
	)
	return updated, nil
}

func (s *translationService) SetTextByID(ctx context.Context, translationID uuid.UUID, text string) (*Translation, error) {
	if translationID == uuid.Nil {
		return nil, ErrTranslationIDRequired
	}

	record, err := s.repo.GetTranslationByID(ctx, translationID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTranslationText(ctx, record.ItemID, record.LanguageID, text, s.clock().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("translation.text_updated",
		"translation_id", translationID.String(),
		"language_id", record.LanguageID.String(),
	)
	return updated, nil
}

func (s *translationService) GetText(ctx context.Context, itemID, languageID uuid.UUID) (string, error) {
	record, err := s.repo.GetTranslation(ctx, itemID, languageID)
	if err != nil {
		return "", err
	}
	return record.Text, nil
}

func (s *translationService) ListForOwner(ctx context.Context, model string, ownerID uuid.UUID) ([]*Translation, error) {
	if model == "" {
		return nil, ErrOwnerModelRequired
	}
	if ownerID == uuid.Nil {
		return nil, ErrOwnerIDRequired
	}

	items, err := s.repo.ListItemsForOwner(ctx, model, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]*Translation, 0, len(items)*2)
	for _, item := range items {
		translations, err := s.repo.ListTranslationsForItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, translations...)
	}
	return out, nil
}

func (s *translationService) CountEmpty(ctx context.Context, languageID uuid.UUID) (int, error) {
	return s.repo.CountEmpty(ctx, languageID)
}
