package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/internal/users"
	"github.com/mrjordantanner/logistics-app-server/pkg/auth"
	"github.com/mrjordantanner/logistics-app-server/pkg/config"
	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/security"
)

// LoginResult carries the minted token together with the authenticated user.
type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *users.UserDTO `json:"user"`
}

// Service exposes credential verification and token minting.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type service struct {
	users userFinder
	cfg   config.JWTConfig
	now   func() time.Time
}

// NewService constructs an auth service instance.
func NewService(users userFinder, cfg config.JWTConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{users: users, cfg: cfg, now: time.Now}, nil
}

// Login verifies the credential pair and mints an access token. Unknown
// emails and bad passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, invalidCredentials()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user by email")
	}

	if !security.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		return nil, invalidCredentials()
	}

	now := s.now().UTC()
	token, err := auth.MintAccessToken(s.cfg, now, auth.AccessTokenPayload{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.cfg.TokenTTL()),
		User:      users.FromModel(user),
	}, nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}
