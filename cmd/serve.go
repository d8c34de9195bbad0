package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/creatorhub/catalog/api/route"
	"github.com/creatorhub/catalog/bootstrap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.App(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	env := app.Env
	if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	timeout := time.Duration(env.ContextTimeout) * time.Second

	engine := gin.New()
	engine.Use(gin.Recovery())
	route.Setup(env, timeout, app.Stores, app.Logger, engine)

	server := &http.Server{
		Addr:              env.ServerAddress,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("http server starting",
			"event", "http_server_starting",
			"module", "cmd",
			"layer", "platform",
			"addr", env.ServerAddress,
			"store", app.Stores.Driver,
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.Logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "cmd",
		"layer", "platform",
	)
	return server.Shutdown(shutdownCtx)
}
