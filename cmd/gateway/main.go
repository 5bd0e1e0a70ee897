// Command gateway runs the fabric's single ingress: route table,
// legacy-path redirects, and CORS, per spec §4.1.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/gateway"
	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
)

const (
	servicePrefix = "GATEWAY_"
	serviceName   = "gateway"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, servicePrefix, serviceName)
	if err != nil {
		log.Fatalf("bootstrap %s: %v", serviceName, err)
	}
	defer app.Logger.Sync() //nolint:errcheck

	gwCfg := gateway.Config{
		ServiceBaseURLs: map[string]string{
			"auth":         app.Config.Gateway.AuthBaseURL,
			"profile":      app.Config.Gateway.ProfileBaseURL,
			"discovery":    app.Config.Gateway.DiscoveryBaseURL,
			"media":        app.Config.Gateway.MediaBaseURL,
			"chat":         app.Config.Gateway.ChatBaseURL,
			"admin":        app.Config.Gateway.AdminBaseURL,
			"notification": app.Config.Gateway.NotificationBaseURL,
		},
		CORSOrigin:   app.Config.Gateway.CORSOrigin,
		CORSWildcard: app.Config.Gateway.CORSWildcard,
	}

	router, err := gateway.NewRouter(gwCfg, app.Logger)
	if err != nil {
		app.Logger.Fatal("build gateway router", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("gateway exited with error", zap.Error(err))
	}
}
