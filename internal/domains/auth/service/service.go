package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"giftlist/config"
	"giftlist/infras/jwt"
	"giftlist/infras/otel"
	"giftlist/internal/domains/admin/model"
	"giftlist/internal/domains/admin/repository"
	"giftlist/internal/domains/auth/model/dto"
	"giftlist/shared/constant"
	"giftlist/shared/password"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	VerifyPassword(ctx context.Context, plaintext string) (model.Credential, error)
	SetPassword(ctx context.Context, plaintext string) error
	IssueToken(adminID int64) (dto.LoginResponse, error)
	Authenticate(token string) (int64, error)
}

type serviceImpl struct {
	repo       repository.Admin
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.Admin, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err
	}

	credential, err := s.VerifyPassword(ctx, req.Password)
	if err != nil {
		return res, err
	}

	return s.IssueToken(credential.ID)
}

// VerifyPassword checks plaintext against the stored hash of the single admin credential.
func (s *serviceImpl) VerifyPassword(ctx context.Context, plaintext string) (credential model.Credential, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	credential, err = s.repo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin credential")

		return credential, fmt.Errorf("failed to get admin credential: %w", err)
	}

	if !credential.Configured() {
		log.Warn().Msg("login attempt before an admin password was configured")

		return credential, dto.ErrNotConfigured
	}

	if err = password.Verify(plaintext, credential.PasswordHash); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			log.Warn().Msg("login attempt with wrong password")

			return credential, dto.ErrIncorrectPassword
		}

		log.Error().Err(err).Msg("failed to verify admin password")

		return credential, fmt.Errorf("failed to verify admin password: %w", err)
	}

	return credential, nil
}

// SetPassword stores a new admin password, replacing any previous one.
func (s *serviceImpl) SetPassword(ctx context.Context, plaintext string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	plaintext = strings.TrimSpace(plaintext)

	switch {
	case plaintext == constant.Empty:
		return dto.ErrPasswordRequired
	case utf8.RuneCountInString(plaintext) < dto.MinPasswordLength:
		return dto.ErrPasswordTooShort
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		if errors.Is(err, password.ErrPasswordTooLong) {
			return dto.ErrPasswordTooLong
		}

		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.SavePasswordHash(ctx, hash); err != nil {
		log.Error().Err(err).Msg("failed to save admin password")

		return fmt.Errorf("failed to save admin password: %w", err)
	}

	log.Info().Msg("Admin password updated")

	return nil
}

func (s *serviceImpl) IssueToken(adminID int64) (res dto.LoginResponse, err error) {
	token, err := s.jwtService.GenerateToken(adminID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}

// Authenticate resolves a bearer token to the admin id it was issued for.
func (s *serviceImpl) Authenticate(token string) (int64, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return 0, dto.ErrTokenExpired
		}

		log.Debug().Err(err).Msg("rejected bearer token")

		return 0, dto.ErrTokenInvalid
	}

	return claims.AdminID, nil
}
