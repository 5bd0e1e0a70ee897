// Command discovery runs the /discovery/like collaborator: records a
// like and, when the other party already liked back, publishes
// match.created.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
	"github.com/datingapp/request-fabric/internal/services/discovery"
)

const (
	servicePrefix = "DISCOVERY_"
	serviceName   = "discovery"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, servicePrefix, serviceName)
	if err != nil {
		log.Fatalf("bootstrap %s: %v", serviceName, err)
	}
	defer app.Logger.Sync() //nolint:errcheck

	bus, closeBus, err := app.NewEventBus()
	if err != nil {
		app.Logger.Fatal("connect to event bus", zap.Error(err))
	}
	defer closeBus() //nolint:errcheck

	dataClient := outbound.New("data", app.Config.Downstream.DataBaseURL, app.NewOutboundWrapper())
	store := discovery.NewHTTPLikeStore(dataClient)

	svc := discovery.NewService(store, bus)
	handlers := discovery.NewHandlers(svc)
	router := discovery.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("discovery service exited with error", zap.Error(err))
	}
}
