// Command data runs the internal-only data collaborator: likes,
// matches, messages, profiles, media assets, and user suspension.
// Every route is reached through platform/outbound.Client from another
// fabric service, never directly from the gateway.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/services/data"
)

const (
	servicePrefix = "DATA_"
	serviceName   = "data"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, servicePrefix, serviceName)
	if err != nil {
		log.Fatalf("bootstrap %s: %v", serviceName, err)
	}
	defer app.Logger.Sync() //nolint:errcheck

	if err := data.Migrate(app.Config.Database.URL); err != nil {
		app.Logger.Fatal("run migrations", zap.Error(err))
	}

	poolCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := data.NewPool(poolCtx, app.Config.Database.URL, data.PoolConfig{})
	cancel()
	if err != nil {
		app.Logger.Fatal("connect to database", zap.Error(err))
	}
	defer pool.Close()

	repo := data.NewRepository(pool)
	handlers := data.NewHandlers(repo)
	router := data.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("data service exited with error", zap.Error(err))
	}
}
