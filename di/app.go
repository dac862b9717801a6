package di

import (
	"context"
	"giftlist/infras/otel"
	"giftlist/infras/postgres"
	authService "giftlist/internal/domains/auth/service"
	"giftlist/transport/http"
)

// App is the HTTP server together with the resources it releases on exit.
type App struct {
	HTTP *http.HTTP
	DB   *postgres.Connection
	Otel otel.Otel
}

func (a *App) Close(ctx context.Context) {
	a.DB.Close()
	otel.Shutdown(ctx, a.Otel)
}

// AdminTool backs the admin command line.
type AdminTool struct {
	Auth authService.Auth
	DB   *postgres.Connection
}
