// Package catalogcmd exposes catalog maintenance operations as go-command
// messages so hosts can drive them from CLIs, cron jobs, or dispatchers.
package catalogcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-dbtranslation/catalog"
	"github.com/goliatone/go-dbtranslation/internal/commands"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	"github.com/google/uuid"
)

const syncInstanceMessageType = "dbtranslation.catalog.sync_instance"

// SyncInstanceCommand re-runs the lifecycle ensure step for an owner row,
// creating any Items or blank Translations the row is missing.
type SyncInstanceCommand struct {
	Model   string    `json:"model"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// Type implements command.Message.
func (SyncInstanceCommand) Type() string { return syncInstanceMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SyncInstanceCommand) Validate() error {
	errs := validation.Errors{}
	if m.Model == "" {
		errs["model"] = validation.NewError("dbtranslation.catalog.sync.model_required", "model is required")
	}
	if m.OwnerID == uuid.Nil {
		errs["owner_id"] = validation.NewError("dbtranslation.catalog.sync.owner_id_required", "owner_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SyncInstanceHandler applies the lifecycle ensure step via the shared handler foundation.
type SyncInstanceHandler struct {
	inner *commands.Handler[SyncInstanceCommand]
}

// NewSyncInstanceHandler constructs a handler wired to the lifecycle controller.
func NewSyncInstanceHandler(lifecycle catalog.Lifecycle, logger interfaces.Logger, opts ...commands.HandlerOption[SyncInstanceCommand]) *SyncInstanceHandler {
	exec := func(ctx context.Context, msg SyncInstanceCommand) error {
		_, err := lifecycle.InstanceUpdated(ctx, msg.Model, msg.OwnerID)
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncInstanceCommand]{
		commands.WithLogger[SyncInstanceCommand](logger),
		commands.WithOperation[SyncInstanceCommand]("catalog.sync_instance"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncInstanceHandler{
		inner: commands.NewHandler[SyncInstanceCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncInstanceCommand].Execute.
func (h *SyncInstanceHandler) Execute(ctx context.Context, msg SyncInstanceCommand) error {
	return h.inner.Execute(ctx, msg)
}
