package middleware

import (
	"fmt"
	"giftlist/config"
	"giftlist/infras/metrics"
	"giftlist/infras/otel"
	"giftlist/shared/constant"
	"giftlist/transport/http/response"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
	unmatchedRoute    = "unmatched"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	AccessLog(next http.Handler) http.Handler
	Recoverer(next http.Handler) http.Handler
	SecureHeaders(next http.Handler) http.Handler
	Metrics(next http.Handler) http.Handler
	MaxBodySize(limit int64) func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel    otel.Otel
	config  *config.Config
	metrics *metrics.Metrics
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, metrics *metrics.Metrics) AppMiddleware {
	return &appMiddleware{
		otel:    otel,
		config:  config,
		metrics: metrics,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       request.Host,
			"http.source":     request.RemoteAddr,
			"http.request_id": chiMiddleware.GetReqID(request.Context()),
		})

		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(ww, request.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.route":       routePattern(request),
			"http.status_code": statusOf(ww),
		})

		if statusOf(ww) >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("http status %d", statusOf(ww)))
		}
	})
}

func (a *appMiddleware) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, request)

		status := statusOf(ww)

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("request_id", chiMiddleware.GetReqID(request.Context())).
			Str("method", request.Method).
			Str("path", request.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", request.RemoteAddr).
			Msg("HTTP request")
	})
}

// Recoverer turns a panic into a JSON 500. http.ErrAbortHandler is re-raised for net/http.
func (a *appMiddleware) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(rec)
			}

			log.Error().
				Str("request_id", chiMiddleware.GetReqID(request.Context())).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")

			response.WithMessage(writer, http.StatusInternalServerError, constant.ResponseErrorInternal)
		}()

		next.ServeHTTP(writer, request)
	})
}

func (a *appMiddleware) SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		header := writer.Header()
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "DENY")
		header.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		header.Set("Cross-Origin-Resource-Policy", "same-site")

		if a.config.IsProduction() {
			header.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(writer, request)
	})
}

func (a *appMiddleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, request)

		a.metrics.ObserveRequest(request.Method, routePattern(request), statusOf(ww), time.Since(start))
	})
}

// MaxBodySize caps the request body. Reads past the limit fail inside the handler's decoder.
func (a *appMiddleware) MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Body != nil {
				request.Body = http.MaxBytesReader(writer, request.Body, limit)
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// routePattern is the matched chi pattern so metrics labels stay bounded.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return unmatchedRoute
	}

	if pattern := rctx.RoutePattern(); pattern != constant.Empty {
		return pattern
	}

	return unmatchedRoute
}

func statusOf(ww chiMiddleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}

	return ww.Status()
}
