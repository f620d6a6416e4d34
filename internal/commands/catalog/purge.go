package catalogcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-dbtranslation/catalog"
	"github.com/goliatone/go-dbtranslation/internal/commands"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/google/uuid"
)

const purgeInstanceMessageType = "dbtranslation.catalog.purge_instance"

// PurgeInstanceCommand removes an owner row's Items and their Translations,
// typically after the owner row itself was deleted.
type PurgeInstanceCommand struct {
	Model   string    `json:"model"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// Type implements command.Message.
func (PurgeInstanceCommand) Type() string { return purgeInstanceMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m PurgeInstanceCommand) Validate() error {
	errs := validation.Errors{}
	if m.Model == "" {
		errs["model"] = validation.NewError("dbtranslation.catalog.purge.model_required", "model is required")
	}
	if m.OwnerID == uuid.Nil {
		errs["owner_id"] = validation.NewError("dbtranslation.catalog.purge.owner_id_required", "owner_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PurgeInstanceHandler deletes catalog rows via the lifecycle controller.
type PurgeInstanceHandler struct {
	inner *commands.Handler[PurgeInstanceCommand]
}

// NewPurgeInstanceHandler constructs a handler wired to the lifecycle controller.
func NewPurgeInstanceHandler(lifecycle catalog.Lifecycle, logger interfaces.Logger, opts ...commands.HandlerOption[PurgeInstanceCommand]) *PurgeInstanceHandler {
	exec := func(ctx context.Context, msg PurgeInstanceCommand) error {
		return lifecycle.InstanceDeleted(ctx, msg.Model, msg.OwnerID)
	}

	handlerOpts := []commands.HandlerOption[PurgeInstanceCommand]{
		commands.WithLogger[PurgeInstanceCommand](logger),
		commands.WithOperation[PurgeInstanceCommand]("catalog.purge_instance"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PurgeInstanceHandler{
		inner: commands.NewHandler[PurgeInstanceCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PurgeInstanceCommand].Execute.
func (h *PurgeInstanceHandler) Execute(ctx context.Context, msg PurgeInstanceCommand) error {
	return h.inner.Execute(ctx, msg)
}
