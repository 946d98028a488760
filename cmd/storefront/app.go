package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/kbukum/storefront/bootstrap"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/notify"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/store"
)

// env is what a command runs against.
type env struct {
	store  *store.Store
	cfg    *Config
	stdout io.Writer
}

func execute(ctx context.Context, cfg *Config, cmd command, args []string, stdout, stderr io.Writer, verbose bool) error {
	opts := []bootstrap.Option{bootstrap.WithSummaryOutput(stderr)}
	if !verbose {
		opts = append(opts, bootstrap.WithQuiet())
	}
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return err
	}
	log := app.Logger

	providers, err := observability.Setup(ctx, cfg.Observability, log)
	if err != nil {
		return err
	}
	app.OnStop(providers.Shutdown)

	// abandon releases the providers when setup fails before RunTask.
	abandon := func(err error) error {
		if stopErr := app.Shutdown(); stopErr != nil {
			log.Warn("shutdown after failed setup", logger.Fields(logger.FieldError, stopErr.Error()))
		}
		return err
	}

	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return abandon(err)
	}

	hub := notify.NewHub(log)
	toasts := hub.Subscribe("cli", 32)

	st, err := store.Open(cfg.Store, log,
		store.WithNotifier(notify.Multi(notify.NewLogNotifier(log), hub)),
		store.WithTracer(observability.Tracer(observability.InstrumentationName)),
		store.WithMetrics(metrics),
	)
	if err != nil {
		return abandon(err)
	}
	if err := app.RegisterComponent(store.NewComponent(st, hub)); err != nil {
		return abandon(err)
	}

	ctx = logger.ContextWithRequestID(ctx, uuid.NewString())
	return app.RunTask(ctx, func(ctx context.Context) error {
		err := cmd.run(ctx, &env{store: st, cfg: cfg, stdout: stdout}, args)
		printToasts(stderr, toasts)
		return err
	})
}

// printToasts writes the notifications raised during the command.
func printToasts(w io.Writer, sub *notify.Subscriber) {
	for {
		select {
		case n, ok := <-sub.Events():
			if !ok {
				return
			}
			mark := "✓"
			if n.Level == notify.LevelError {
				mark = "✗"
			}
			fmt.Fprintf(w, "%s %s\n", mark, n.Message)
		default:
			return
		}
	}
}
