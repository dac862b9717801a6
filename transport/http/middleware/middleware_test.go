package middleware_test

import (
	"encoding/json"
	"giftlist/config"
	"giftlist/infras/metrics"
	"giftlist/infras/otel/mocks"
	authMocks "giftlist/internal/domains/auth/mocks"
	"giftlist/internal/domains/auth/model/dto"
	"giftlist/transport/http/middleware"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)

	return body.Message
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		setupMock   func(svc *authMocks.MockAuth)
		wantCode    int
		wantMessage string
	}{
		{
			name:   "valid token",
			header: "Bearer good",
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Authenticate("good").Return(int64(1), nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:        "missing header",
			setupMock:   func(*authMocks.MockAuth) {},
			wantCode:    http.StatusUnauthorized,
			wantMessage: "authorization header is required",
		},
		{
			name:        "malformed header",
			header:      "Token good",
			setupMock:   func(*authMocks.MockAuth) {},
			wantCode:    http.StatusUnauthorized,
			wantMessage: "authorization header must start with 'Bearer '",
		},
		{
			name:   "expired token",
			header: "Bearer old",
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Authenticate("old").Return(int64(0), dto.ErrTokenExpired)
			},
			wantCode:    http.StatusUnauthorized,
			wantMessage: "Token has expired",
		},
		{
			name:   "invalid token",
			header: "Bearer forged",
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Authenticate("forged").Return(int64(0), dto.ErrTokenInvalid)
			},
			wantCode:    http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := authMocks.NewMockAuth(ctrl)
			tt.setupMock(svc)

			var seenAdminID int64

			handler := middleware.NewAuthMiddleware(svc, mocks.NewOtel()).Auth(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					seenAdminID = middleware.AdminID(r.Context())
					w.WriteHeader(http.StatusOK)
				}))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/gifts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, int64(1), seenAdminID)

				return
			}

			assert.Equal(t, tt.wantMessage, message(t, rec))
		})
	}
}

func newAppMiddleware(m *metrics.Metrics) middleware.AppMiddleware {
	cfg := &config.Config{}
	cfg.App.Name = "giftlist"

	return middleware.NewAppMiddleware(mocks.NewOtel(), cfg, m)
}

func TestRecoverer(t *testing.T) {
	app := newAppMiddleware(nil)

	handler := app.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gifts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", message(t, rec))
}

func TestSecureHeaders(t *testing.T) {
	app := newAppMiddleware(nil)

	handler := app.SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestMaxBodySize(t *testing.T) {
	app := newAppMiddleware(nil)

	var readErr error

	handler := app.MaxBodySize(8)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := newAppMiddleware(metrics.NewWithRegistry(reg))

	router := chi.NewRouter()
	router.Use(app.Tracing, app.AccessLog, app.Metrics)
	router.Get("/api/admin/gifts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/gifts/42", nil))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var routes []string

	for _, mf := range mfs {
		if mf.GetName() != "giftlist_http_request_duration_seconds" {
			continue
		}

		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" {
					routes = append(routes, label.GetValue())
				}
			}
		}
	}

	assert.Equal(t, []string{"/api/admin/gifts/{id}"}, routes)
}
