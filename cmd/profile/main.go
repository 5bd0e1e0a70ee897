// Command profile runs the profile collaborator: read/update through
// the data collaborator. Profile writes are not among spec §4.6's
// enumerated routing keys, so this edge never touches the event bus.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
	"github.com/datingapp/request-fabric/internal/services/profile"
)

const (
	servicePrefix = "PROFILE_"
	serviceName   = "profile"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, servicePrefix, serviceName)
	if err != nil {
		log.Fatalf("bootstrap %s: %v", serviceName, err)
	}
	defer app.Logger.Sync() //nolint:errcheck

	dataClient := outbound.New("data", app.Config.Downstream.DataBaseURL, app.NewOutboundWrapper())

	svc := profile.NewService(dataClient)
	handlers := profile.NewHandlers(svc)
	router := profile.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("profile service exited with error", zap.Error(err))
	}
}
