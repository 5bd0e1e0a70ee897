// Command auth runs the authentication collaborator: /auth/validate,
// /auth/refresh, /auth/verify.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/bootstrap"
	"github.com/datingapp/request-fabric/internal/services/auth"
)

const (
	servicePrefix = "AUTH_"
	serviceName   = "auth"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, servicePrefix, serviceName)
	if err != nil {
		log.Fatalf("bootstrap %s: %v", serviceName, err)
	}
	defer app.Logger.Sync() //nolint:errcheck

	telegram := auth.NewHMACTelegramVerifier(app.Config.Auth.TelegramBotToken, app.Config.Auth.InitDataMaxAge)
	resolver := auth.NewStaticPrincipalResolver(app.Config.Auth.AdminTelegramIDs)
	refreshes := auth.NewInMemoryRefreshStore()

	svc := auth.NewService(app.Tokens, telegram, resolver, refreshes)
	handlers := auth.NewHandlers(svc)
	router := auth.NewRouter(handlers, app.Deps)

	addr := fmt.Sprintf(":%d", app.Config.App.HTTPPort)
	if err := app.Run(ctx, addr, router); err != nil {
		app.Logger.Fatal("auth service exited with error", zap.Error(err))
	}
}
