// Command notification runs the fan-out collaborator: consumes
// match.created and message.sent, delivering through a Messenger
// collaborator behind the shared resilience wrapper.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/services/notification"
)

const (
	servicePrefix = "NOTIFICATION_"
	serviceName   = "notification"
	consumerQueue = "notification.fanout"
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

	messenger := notification.NewLogMessenger(app.Logger)
	svc := notification.NewService(messenger, app.NewOutboundWrapper())

	if err := svc.Subscribe(ctx, bus, consumerQueue); err != nil {
		app.Logger.Fatal("subscribe to event bus", zap.Error(err))
	}

	handlers := notification.NewHandlers(svc)
	router := notification.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("notification service exited with error", zap.Error(err))
	}
}
