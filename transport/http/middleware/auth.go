package middleware

import (
	"context"
	"giftlist/infras/jwt"
	"giftlist/infras/otel"
	authService "giftlist/internal/domains/auth/service"
	"giftlist/shared/constant"
	"giftlist/shared/failure"
	"giftlist/transport/http/response"
	"net/http"
)

// Auth guards the admin routes.
type Auth interface {
	Auth(http.Handler) http.Handler
}

type authImpl struct {
	authService authService.Auth
	otel        otel.Otel
}

func NewAuthMiddleware(authService authService.Auth, otel otel.Otel) Auth {
	return &authImpl{
		authService: authService,
		otel:        otel,
	}
}

// Auth requires a valid bearer token and stores the admin id in the request context.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
		})

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			err = failure.Unauthorized(err.Error())
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		adminID, err := m.authService.Authenticate(tokenString)
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyAdminID, adminID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// AdminID returns the admin id stored by Auth, or zero outside an authenticated request.
func AdminID(ctx context.Context) int64 {
	adminID, _ := ctx.Value(constant.ContextKeyAdminID).(int64)

	return adminID
}
