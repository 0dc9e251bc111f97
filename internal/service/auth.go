package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gradebook/internal/crypto"
	"gradebook/internal/models"
	"gradebook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidCredentials covers both unknown email and wrong password so
// responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenTTL is fixed at issuance. Tokens are stateless: not renewable,
// not revocable before expiry.
const TokenTTL = 4 * time.Hour

type AuthService interface {
	Login(email, password string) (token string, user *models.User, err error)
	ParseToken(tokenString string) (*models.Claims, error)
	HashPassword(password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	logger *zap.Logger
}

// NewAuthService builds the auth service around the signing secret
// loaded at startup. Rotating the secret invalidates every outstanding
// token.
func NewAuthService(users repository.UserRepository, jwtSecret string, logger *zap.Logger) AuthService {
	return &authService{users: users, secret: []byte(jwtSecret), logger: logger}
}

func (s *authService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("retrieve user: %w", err)
	}

	if !user.Active {
		return "", nil, ErrInvalidCredentials
	}
	if err := crypto.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user.ID, TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return token, user, nil
}

func (s *authService) signToken(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies signature and expiry. It is stateless and never
// touches the store.
func (s *authService) ParseToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *authService) HashPassword(password string) (string, error) {
	return crypto.HashPassword(password)
}
