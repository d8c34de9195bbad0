package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

type Application struct {
	Env    *Env
	Stores *Stores
	Logger *slog.Logger
}

func App(ctx context.Context) (*Application, error) {
	env, err := NewEnv()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(env, os.Stdout)
	slog.SetDefault(logger)

	stores, err := OpenStores(ctx, env, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", env.StoreDriver, err)
	}

	if env.AppEnv == "development" {
		logger.Info("the app is running in development env",
			"event", "app_started",
			"module", "bootstrap",
			"layer", "platform",
			"store", stores.Driver,
		)
	}
	return &Application{
		Env:    env,
		Stores: stores,
		Logger: logger,
	}, nil
}

func (app *Application) Close() {
	app.Stores.Close()
}
