package catalogcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-dbtranslation/catalog"
	"github.com/goliatone/go-dbtranslation/internal/commands"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/google/uuid"
)

const backfillLanguageMessageType = "dbtranslation.catalog.backfill_language"

// BackfillLanguageCommand creates the blank Translations missing for a
// language registered after Items already existed.
type BackfillLanguageCommand struct {
	LanguageID uuid.UUID `json:"language_id"`
}

// Type implements command.Message.
func (BackfillLanguageCommand) Type() string { return backfillLanguageMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m BackfillLanguageCommand) Validate() error {
	errs := validation.Errors{}
	if m.LanguageID == uuid.Nil {
		errs["language_id"] = validation.NewError("dbtranslation.catalog.backfill.language_id_required", "language_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BackfillLanguageHandler runs the backfill repair via the lifecycle controller.
type BackfillLanguageHandler struct {
	inner *commands.Handler[BackfillLanguageCommand]
}

// NewBackfillLanguageHandler constructs a handler wired to the lifecycle controller.
func NewBackfillLanguageHandler(lifecycle catalog.Lifecycle, logger interfaces.Logger, opts ...commands.HandlerOption[BackfillLanguageCommand]) *BackfillLanguageHandler {
	exec := func(ctx context.Context, msg BackfillLanguageCommand) error {
		_, err := lifecycle.Backfill(ctx, msg.LanguageID)
		return err
	}

	handlerOpts := []commands.HandlerOption[BackfillLanguageCommand]{
		commands.WithLogger[BackfillLanguageCommand](logger),
		commands.WithOperation[BackfillLanguageCommand]("catalog.backfill_language"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BackfillLanguageHandler{
		inner: commands.NewHandler[BackfillLanguageCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BackfillLanguageCommand].Execute.
func (h *BackfillLanguageHandler) Execute(ctx context.Context, msg BackfillLanguageCommand) error {
	return h.inner.Execute(ctx, msg)
}
