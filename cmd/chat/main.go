// Command chat runs the conversation collaborator: idempotent message
// send and the echoing WebSocket endpoint.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
	"github.com/datingapp/request-fabric/internal/services/chat"
)

const (
	servicePrefix = "CHAT_"
	serviceName   = "chat"
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
	store := chat.NewHTTPMessageStore(dataClient)

	svc := chat.NewService(store, bus)
	ws := chat.NewWebSocketHandler(app.Logger)
	handlers := chat.NewHandlers(svc, ws)
	router := chat.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("chat service exited with error", zap.Error(err))
	}
}
