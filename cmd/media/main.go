// Command media runs the upload collaborator: accepts a file, hands it
// to the moderation/transformation pipeline, and records the asset.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
	"github.com/datingapp/request-fabric/internal/services/media"
)

const (
	servicePrefix = "MEDIA_"
	serviceName   = "media"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, servicePrefix, serviceName)
	if err != nil {
		log.Fatalf("bootstrap %s: %v", serviceName, err)
	}
	defer app.Logger.Sync() //nolint:errcheck

	dataClient := outbound.New("data", app.Config.Downstream.DataBaseURL, app.NewOutboundWrapper())
	processor := media.NewPassthroughProcessor(app.Config.Downstream.DataBaseURL + "/media/blobs")
	queue := media.NewLogModerationQueue(app.Logger)

	svc := media.NewService(processor, queue, dataClient)
	handlers := media.NewHandlers(svc)
	router := media.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("media service exited with error", zap.Error(err))
	}
}
