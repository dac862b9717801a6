package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"giftlist/config"
	"giftlist/shared/constant"
	"giftlist/shared/timezone"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	bearerPrefix        = "Bearer "
	generatedSecretSize = 32
	defaultExpireMin    = 24 * 60
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingHeader = errors.New("authorization header is required")
	ErrInvalidHeader = errors.New("authorization header must start with 'Bearer '")
)

// Claims represents the JWT claims structure
type Claims struct {
	AdminID int64  `json:"admin_id"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// Token is a signed admin session token.
type Token struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	ExpiresAt time.Time `json:"-"`
}

// JWT handles JWT operations
type JWT interface {
	GenerateToken(adminID int64) (*Token, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service handles JWT operations
type Service struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// New creates a new JWT service. Without a configured secret a random one is generated,
// which invalidates every issued token on restart.
func New(cfg *config.Config) JWT {
	secret := cfg.JWT.Secret
	if secret == constant.Empty {
		secret = randomSecret()

		log.Warn().Msg("JWT_SECRET is not set, using a random secret for this process")
	}

	expireMin := cfg.JWT.ExpireMin
	if expireMin <= 0 {
		expireMin = defaultExpireMin
	}

	return &Service{
		secret: []byte(secret),
		issuer: cfg.App.Name,
		expiry: time.Duration(expireMin) * time.Minute,
		now:    timezone.Now,
	}
}

// GenerateToken signs an HS256 token for the admin.
func (s *Service) GenerateToken(adminID int64) (*Token, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.expiry)
	tokenID := uuid.New().String()

	claims := Claims{
		AdminID: adminID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(adminID, 10),
			ID:        tokenID,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		Token:     signedToken,
		ExpiresIn: int64(s.expiry.Seconds()),
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken validates and parses a JWT token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.AdminID <= 0 {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == constant.Empty {
		return constant.Empty, ErrMissingHeader
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return constant.Empty, ErrInvalidHeader
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == constant.Empty {
		return constant.Empty, ErrMissingHeader
	}

	return token, nil
}

func randomSecret() string {
	buf := make([]byte, generatedSecretSize)
	if _, err := rand.Read(buf); err != nil {
		return uuid.New().String() + uuid.New().String()
	}

	return hex.EncodeToString(buf)
}
