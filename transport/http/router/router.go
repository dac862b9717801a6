package router

import (
	"context"
	"giftlist/config"
	"giftlist/infras/metrics"
	"giftlist/infras/storage"
	"giftlist/internal/handlers/admin"
	"giftlist/internal/handlers/gift"
	"giftlist/shared/constant"
	"giftlist/transport/http/middleware"
	"giftlist/transport/http/response"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	compressLevel      = 5
	healthCheckTimeout = 2 * time.Second
	indexFile          = "index.html"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type DomainHandlers struct {
	Gift  gift.Handler
	Admin admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Config         *config.Config
	Middleware     middleware.AppMiddleware
	Metrics        *metrics.Metrics
	Health         HealthChecker
}

func New(
	domainHandlers DomainHandlers,
	cfg *config.Config,
	appMiddleware middleware.AppMiddleware,
	metrics *metrics.Metrics,
	health HealthChecker,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Config:         cfg,
		Middleware:     appMiddleware,
		Metrics:        metrics,
		Health:         health,
	}
}

// SetupRoutes mounts every route on router. ready reports false once the server starts to shut down.
func (r *Router) SetupRoutes(router chi.Router, ready func() bool) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		r.Middleware.Tracing,
		r.Middleware.AccessLog,
		r.Middleware.Recoverer,
		r.Middleware.Metrics,
		r.Middleware.SecureHeaders,
		chiMiddleware.Compress(compressLevel),
	)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(r.corsOptions()))
	}

	router.NotFound(r.notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Get("/health", r.health(ready))
	router.Handle("/metrics", r.Metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if r.Config.App.Upload.Driver != constant.StorageDriverS3 {
		router.Handle(storage.PublicPath+"/*", uploads(r.Config.App.Upload.Dir))
	}

	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.NotFound(routeNotFound)

		r.DomainHandlers.Gift.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func (r *Router) corsOptions() cors.Options {
	cfg := r.Config.App.CORS

	return cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{constant.RequestHeaderRequestID},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAgeSeconds,
	}
}

func (r *Router) health(ready func() bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if !ready() {
			response.WithPreparingShutdown(writer)

			return
		}

		ctx, cancel := context.WithTimeout(request.Context(), healthCheckTimeout)
		defer cancel()

		if err := r.Health.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			response.WithUnhealthy(writer)

			return
		}

		response.WithFields(writer, http.StatusOK, constant.Empty, map[string]any{"status": "ok"})
	}
}

// notFound serves the frontend build when one is configured. Unknown paths without a file
// extension fall back to index.html so client side routes survive a reload.
func (r *Router) notFound(writer http.ResponseWriter, request *http.Request) {
	staticDir := r.Config.App.StaticDir
	if staticDir == constant.Empty || (request.Method != http.MethodGet && request.Method != http.MethodHead) {
		routeNotFound(writer, request)

		return
	}

	name := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+request.URL.Path)))

	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(writer, request, name)

		return
	}

	if filepath.Ext(request.URL.Path) != constant.Empty {
		routeNotFound(writer, request)

		return
	}

	http.ServeFile(writer, request, filepath.Join(staticDir, indexFile))
}

// uploads serves stored images. Directory listings are not exposed.
func uploads(dir string) http.Handler {
	fileServer := http.StripPrefix(storage.PublicPath, http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasSuffix(request.URL.Path, "/") {
			routeNotFound(writer, request)

			return
		}

		fileServer.ServeHTTP(writer, request)
	})
}

func routeNotFound(writer http.ResponseWriter, _ *http.Request) {
	response.WithMessage(writer, http.StatusNotFound, constant.ResponseErrorRouteNotFound)
}

func methodNotAllowed(writer http.ResponseWriter, _ *http.Request) {
	response.WithMessage(writer, http.StatusMethodNotAllowed, constant.ResponseErrorMethodNotAllow)
}
