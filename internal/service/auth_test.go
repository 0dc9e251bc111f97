package service

import (
	"testing"
	"time"

	"gradebook/internal/models"
	"gradebook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-signing-secret"

type fakeUserRepo struct {
	repository.UserRepository
	getByEmail func(email string) (*models.User, error)
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	return f.getByEmail(email)
}

func newTestAuthService(t *testing.T, repo repository.UserRepository) *authService {
	t.Helper()
	return NewAuthService(repo, testSecret, zap.NewNop()).(*authService)
}

func userWithPassword(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           7,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Active:       true,
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	user := userWithPassword(t, "secret1pass")
	svc := newTestAuthService(t, &fakeUserRepo{getByEmail: func(string) (*models.User, error) {
		return user, nil
	}})

	token, loggedIn, err := svc.Login("ana@example.com", "secret1pass")
	require.NoError(t, err)
	assert.Equal(t, user.Email, loggedIn.Email)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{getByEmail: func(string) (*models.User, error) {
		return nil, repository.ErrNotFound
	}})

	_, _, err := svc.Login("nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	user := userWithPassword(t, "secret1pass")
	svc := newTestAuthService(t, &fakeUserRepo{getByEmail: func(string) (*models.User, error) {
		return user, nil
	}})

	_, _, err := svc.Login("ana@example.com", "not-the-password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	user := userWithPassword(t, "secret1pass")
	user.Active = false
	svc := newTestAuthService(t, &fakeUserRepo{getByEmail: func(string) (*models.User, error) {
		return user, nil
	}})

	_, _, err := svc.Login("ana@example.com", "secret1pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenExpired(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{})

	token, err := svc.signToken(7, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenWrongSecret(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{})
	other := NewAuthService(&fakeUserRepo{}, "a-different-secret", zap.NewNop()).(*authService)

	token, err := other.signToken(7, time.Hour)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenMalformed(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{})

	_, err := svc.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestHashPasswordRoundtrip(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{})

	hash, err := svc.HashPassword("secret1pass")
	require.NoError(t, err)
	assert.NotContains(t, hash, "secret1pass")

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret1pass")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("other2pass")))
}
