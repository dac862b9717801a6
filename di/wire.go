//go:build wireinject
// +build wireinject

package di

import (
	"giftlist/config"
	"giftlist/infras/jwt"
	"giftlist/infras/metrics"
	"giftlist/infras/otel"
	"giftlist/infras/postgres"
	"giftlist/infras/redis"
	"giftlist/infras/storage"
	"giftlist/shared/cache"
	"giftlist/transport/http"
	"giftlist/transport/http/middleware"
	"giftlist/transport/http/router"

	adminRepository "giftlist/internal/domains/admin/repository"
	authService "giftlist/internal/domains/auth/service"
	giftRepository "giftlist/internal/domains/gift/repository"
	giftService "giftlist/internal/domains/gift/service"
	reservationService "giftlist/internal/domains/reservation/service"
	adminHandler "giftlist/internal/handlers/admin"
	giftHandler "giftlist/internal/handlers/gift"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	metrics.New,
	storage.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var giftDomain = wire.NewSet(
	giftRepository.New,
	giftService.New,
	reservationService.New,
)

var authDomain = wire.NewSet(
	adminRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	giftDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	wire.Bind(new(router.HealthChecker), new(*postgres.Connection)),
	giftHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}

func InitializeAdminTool() *AdminTool {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		jwt.New,
		authDomain,
		wire.Struct(new(AdminTool), "*"),
	)

	return &AdminTool{}
}
