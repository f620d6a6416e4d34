// Package commands wires the module's command handlers into host-provided
// registries, dispatchers, and cron schedulers.
package commands

import (
	"errors"

	"github.com/goliatone/go-dbtranslation/catalog"
	catalogcmd "github.com/goliatone/go-dbtranslation/internal/commands/catalog"
	"github.com/goliatone/go-dbtranslation/internal/logging"
	"github.com/goliatone/go-dbtranslation/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// Services carries the domain services the command handlers execute against.
type Services struct {
	Lifecycle    catalog.Lifecycle
	Translations catalog.TranslationService
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Register builds the module's command handlers and optionally registers them
// with registry/dispatcher/cron integrations. Handlers for services the
// caller left nil are skipped.
func Register(services Services, opts RegistrationOptions) (*RegistrationResult, error) {
	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	logger := logging.CommandsLogger(opts.LoggerProvider)

	if services.Lifecycle != nil {
		register(catalogcmd.NewSyncInstanceHandler(services.Lifecycle, logger))
		register(catalogcmd.NewPurgeInstanceHandler(services.Lifecycle, logger))
		register(catalogcmd.NewBackfillLanguageHandler(services.Lifecycle, logger))
	}

	if services.Translations != nil {
		register(catalogcmd.NewSetTranslationTextHandler(services.Translations, logger))
	}

	return result, errs
}
