package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"giftlist/config"
	"giftlist/infras/metrics"
	otelMocks "giftlist/infras/otel/mocks"
	authMocks "giftlist/internal/domains/auth/mocks"
	giftMocks "giftlist/internal/domains/gift/service/mocks"
	reservationMocks "giftlist/internal/domains/reservation/mocks"
	"giftlist/internal/handlers/admin"
	"giftlist/internal/handlers/gift"
	"giftlist/transport/http/middleware"
	"giftlist/transport/http/router"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error {
	return p.err
}

func newConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "giftlist"
	cfg.App.Upload.Dir = t.TempDir()
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"*"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	return cfg
}

func newMux(t *testing.T, cfg *config.Config, health router.HealthChecker, ready bool) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	otl := otelMocks.NewOtel()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	app := middleware.NewAppMiddleware(otl, cfg, m)
	authSvc := authMocks.NewMockAuth(ctrl)
	gifts := giftMocks.NewMockGift(ctrl)
	reservations := reservationMocks.NewMockReservation(ctrl)

	r := router.New(router.DomainHandlers{
		Gift:  gift.New(gifts, reservations, otl),
		Admin: admin.New(authSvc, gifts, reservations, middleware.NewAuthMiddleware(authSvc, otl), app, cfg, otl),
	}, cfg, app, m, health)

	mux := chi.NewRouter()
	r.SetupRoutes(mux, func() bool { return ready })

	return mux
}

func get(t *testing.T, mux http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]any

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	msg, _ := body["message"].(string)

	return msg
}

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		name        string
		ready       bool
		pingErr     error
		wantCode    int
		wantMessage string
	}{
		{name: "healthy", ready: true, wantCode: http.StatusOK},
		{name: "grace period", ready: false, wantCode: http.StatusServiceUnavailable, wantMessage: "server preparing to shut down"},
		{
			name:        "database down",
			ready:       true,
			pingErr:     errors.New("connection refused"),
			wantCode:    http.StatusServiceUnavailable,
			wantMessage: "server unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newMux(t, newConfig(t), pinger{err: tt.pingErr}, tt.ready)

			rec := get(t, mux, "/health")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMessage, message(t, rec))
		})
	}
}

func TestRouter_UnknownRoutes(t *testing.T) {
	mux := newMux(t, newConfig(t), pinger{}, true)

	rec := get(t, mux, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", message(t, rec))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/gifts", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", message(t, rec))
}

func TestRouter_Metrics(t *testing.T) {
	mux := newMux(t, newConfig(t), pinger{}, true)

	rec := get(t, mux, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Uploads(t *testing.T) {
	cfg := newConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.App.Upload.Dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.App.Upload.Dir, "images", "gift-1.png"), []byte("png"), 0o600))

	mux := newMux(t, cfg, pinger{}, true)

	rec := get(t, mux, "/uploads/images/gift-1.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = get(t, mux, "/uploads/images/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_StaticFallback(t *testing.T) {
	cfg := newConfig(t)
	cfg.App.StaticDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.App.StaticDir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.App.StaticDir, "app.js"), []byte("console.log(1)"), 0o600))

	mux := newMux(t, cfg, pinger{}, true)

	rec := get(t, mux, "/admin/dashboard")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = get(t, mux, "/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = get(t, mux, "/missing.css")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, mux, "/api/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", message(t, rec))
}

func TestRouter_CORSPreflight(t *testing.T) {
	mux := newMux(t, newConfig(t), pinger{}, true)

	req := httptest.NewRequest(http.MethodOptions, "/api/gifts", nil)
	req.Header.Set("Origin", "https://family.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
