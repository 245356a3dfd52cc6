package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/mrjordantanner/logistics-app-server/pkg/auth"
	"github.com/mrjordantanner/logistics-app-server/pkg/config"
	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/security"
)

type stubUserFinder struct {
	users map[string]*models.User
}

func (s *stubUserFinder) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "logistics-app",
		ExpirationMinutes: 60,
	}
}

func newLoginFixture(t *testing.T) (Service, *models.User) {
	t.Helper()

	hash, salt, err := security.HashPassword("correct horse")
	require.NoError(t, err)

	user := &models.User{
		ID:           7,
		Name:         "Casey Driver",
		Email:        "casey@example.com",
		Phone:        "5551234567",
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         enums.UserRoleDriver,
	}

	svc, err := NewService(&stubUserFinder{users: map[string]*models.User{user.Email: user}}, testJWTConfig())
	require.NoError(t, err)
	return svc, user
}

func TestLoginMintsValidToken(t *testing.T) {
	svc, user := newLoginFixture(t)

	result, err := svc.Login(context.Background(), "Casey@Example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, user.ID, result.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Subject)
	assert.Equal(t, enums.UserRoleDriver, claims.Role)
	assert.NotEmpty(t, claims.ID, "jti should be set")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newLoginFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "correct horse"},
		{"wrong password", "casey@example.com", "battery staple"},
		{"empty email", "", "correct horse"},
		{"empty password", "casey@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.email, tc.password)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
			assert.Equal(t, "invalid email or password", typed.Message())
		})
	}
}
