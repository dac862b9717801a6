package service_test

import (
	"context"
	"errors"
	"giftlist/config"
	"giftlist/infras/jwt"
	jwtMocks "giftlist/infras/jwt/mocks"
	"giftlist/infras/otel/mocks"
	adminMocks "giftlist/internal/domains/admin/mocks"
	"giftlist/internal/domains/admin/model"
	"giftlist/internal/domains/auth/model/dto"
	"giftlist/internal/domains/auth/service"
	"giftlist/shared/failure"
	"giftlist/shared/password"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func configured(t *testing.T, plaintext string) model.Credential {
	t.Helper()

	hash, err := password.Hash(plaintext)
	require.NoError(t, err)

	return model.Credential{ID: model.SingletonID, PasswordHash: hash}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	credential := configured(t, "wedding2026")

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Password: "wedding2026"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any()).Return(credential, nil)
				mockJWT.EXPECT().
					GenerateToken(model.SingletonID).
					Return(&jwt.Token{Token: "signed", ExpiresIn: 86400}, nil)
			},
		},
		{
			name:      "missing password",
			req:       dto.LoginRequest{Password: " "},
			setupMock: func() {},
			wantErr:   dto.ErrPasswordRequired,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Password: "guess"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any()).Return(credential, nil)
			},
			wantErr:  dto.ErrIncorrectPassword,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "password never configured",
			req:  dto.LoginRequest{Password: "wedding2026"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any()).Return(model.Credential{}, nil)
			},
			wantErr:  dto.ErrNotConfigured,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Password: "wedding2026"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any()).Return(model.Credential{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "token signing error",
			req:  dto.LoginRequest{Password: "wedding2026"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any()).Return(credential, nil)
				mockJWT.EXPECT().GenerateToken(gomock.Any()).Return(nil, errors.New("signing failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed", res.Token)
			assert.Equal(t, int64(86400), res.ExpiresIn)
		})
	}
}

func TestAuthService_SetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := adminMocks.NewMockAdmin(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	tests := []struct {
		name      string
		plaintext string
		setupMock func()
		wantErr   error
		wantCode  int
	}{
		{
			name:      "stores a bcrypt hash of the trimmed password",
			plaintext: "  s3cret  ",
			setupMock: func() {
				mockRepo.EXPECT().
					SavePasswordHash(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, hash string) error {
						assert.NoError(t, password.Verify("s3cret", hash))

						return nil
					})
			},
		},
		{
			name:      "empty",
			plaintext: "   ",
			setupMock: func() {},
			wantErr:   dto.ErrPasswordRequired,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "too short",
			plaintext: "abc",
			setupMock: func() {},
			wantErr:   dto.ErrPasswordTooShort,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "too long for bcrypt",
			plaintext: strings.Repeat("p", 80),
			setupMock: func() {},
			wantErr:   dto.ErrPasswordTooLong,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "repository error",
			plaintext: "s3cret",
			setupMock: func() {
				mockRepo.EXPECT().SavePasswordHash(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.SetPassword(context.Background(), tt.plaintext)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(adminMocks.NewMockAdmin(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	tests := []struct {
		name      string
		setupMock func()
		wantID    int64
		wantErr   error
	}{
		{
			name: "valid token",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken("tok").Return(&jwt.Claims{AdminID: 1}, nil)
			},
			wantID: 1,
		},
		{
			name: "expired token",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken("tok").Return(nil, jwt.ErrExpiredToken)
			},
			wantErr: dto.ErrTokenExpired,
		},
		{
			name: "tampered token",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken("tok").Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: dto.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			id, err := svc.Authenticate("tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Name = "giftlist"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireMin = 1440

	svc := service.New(adminMocks.NewMockAdmin(ctrl), cfg, mocks.NewOtel(), jwt.New(cfg))

	res, err := svc.IssueToken(model.SingletonID)
	require.NoError(t, err)
	assert.Equal(t, int64(24*60*60), res.ExpiresIn)

	id, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, model.SingletonID, id)

	_, err = svc.Authenticate(res.Token + "x")
	assert.ErrorIs(t, err, dto.ErrTokenInvalid)
}
