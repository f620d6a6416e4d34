package catalogcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-dbtranslation/catalog"
	"github.com/goliatone/go-dbtranslation/internal/commands"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/google/uuid"
)

const setTranslationTextMessageType = "dbtranslation.catalog.set_translation_text"

// SetTranslationTextCommand writes the text of a single Translation row.
// Empty text is legal; it resets the translation to the missing state.
type SetTranslationTextCommand struct {
	ItemID     uuid.UUID `json:"item_id"`
	LanguageID uuid.UUID `json:"language_id"`
	Text       string    `json:"text"`
}

// Type implements command.Message.
func (SetTranslationTextCommand) Type() string { return setTranslationTextMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SetTranslationTextCommand) Validate() error {
	errs := validation.Errors{}
	if m.ItemID == uuid.Nil {
		errs["item_id"] = validation.NewError("dbtranslation.catalog.set_text.item_id_required", "item_id is required")
	}
	if m.LanguageID == uuid.Nil {
		errs["language_id"] = validation.NewError("dbtranslation.catalog.set_text.language_id_required", "language_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetTranslationTextHandler edits translation text via the translation service.
type SetTranslationTextHandler struct {
	inner *commands.Handler[SetTranslationTextCommand]
}

// NewSetTranslationTextHandler constructs a handler wired to the translation service.
func NewSetTranslationTextHandler(service catalog.TranslationService, logger interfaces.Logger, opts ...commands.HandlerOption[SetTranslationTextCommand]) *SetTranslationTextHandler {
	exec := func(ctx context.Context, msg SetTranslationTextCommand) error {
		_, err := service.SetText(ctx, catalog.SetTextRequest{
			ItemID:     msg.ItemID,
			LanguageID: msg.LanguageID,
			Text:       msg.Text,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SetTranslationTextCommand]{
		commands.WithLogger[SetTranslationTextCommand](logger),
		commands.WithOperation[SetTranslationTextCommand]("catalog.set_translation_text"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetTranslationTextHandler{
		inner: commands.NewHandler[SetTranslationTextCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SetTranslationTextCommand].Execute.
func (h *SetTranslationTextHandler) Execute(ctx context.Context, msg SetTranslationTextCommand) error {
	return h.inner.Execute(ctx, msg)
}
