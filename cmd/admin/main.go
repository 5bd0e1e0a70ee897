// Command admin runs the moderation-decision and user-suspension
// collaborator, gated behind the admin-only middleware chain variant.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
	"github.com/datingapp/request-fabric/internal/services/admin"
)

const (
	servicePrefix = "ADMIN_"
	serviceName   = "admin"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, servicePrefix, serviceName)
	if err != nil {
		log.Fatalf("bootstrap %s: %v", serviceName, err)
	}
	defer app.Logger.Sync() //nolint:errcheck

	dataClient := outbound.New("data", app.Config.Downstream.DataBaseURL, app.NewOutboundWrapper())

	svc := admin.NewService(dataClient)
	handlers := admin.NewHandlers(svc)
	router := admin.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("admin service exited with error", zap.Error(err))
	}
}
