package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/casamaria/storefront-backend/internal/storage"
	pkgauth "github.com/casamaria/storefront-backend/pkg/auth"
	"github.com/casamaria/storefront-backend/pkg/auth/session"
	"github.com/casamaria/storefront-backend/pkg/config"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
	"github.com/casamaria/storefront-backend/pkg/security"
)

// Profile is the persisted admin account. The password is stored as an
// argon2id hash, never in clear text.
type Profile struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Image        string `json:"image"`
}

// PublicProfile is the profile without credential material.
type PublicProfile struct {
	Email string `json:"email"`
	Image string `json:"image"`
}

// LoginResult carries the minted token for a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

// UpdateProfileInput mutates the admin account. Setting NewPassword
// requires CurrentPassword to match the stored hash and ConfirmPassword
// to equal NewPassword.
type UpdateProfileInput struct {
	Email           *string
	Image           *string
	NewPassword     string
	ConfirmPassword string
	CurrentPassword string
}

// Service exposes admin authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) PublicProfile
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*PublicProfile, error)
}

type persister interface {
	Read(ctx context.Context, key string, dest any) (bool, error)
	Write(ctx context.Context, key string, value any) error
}

type sessionManager interface {
	Start(ctx context.Context) (string, error)
	Revoke(ctx context.Context) error
}

type service struct {
	mu       sync.RWMutex
	store    persister
	sessions sessionManager
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	logg     *logger.Logger
	profile  Profile
	now      func() time.Time
}

// NewService loads the admin profile, bootstrapping the default account
// on first run. Running with the bootstrap credentials logs a warning.
func NewService(
	ctx context.Context,
	store persister,
	sessions *session.Manager,
	cfg *config.Config,
	logg *logger.Logger,
) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("persistent store is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	s := &service{
		store:    store,
		sessions: sessions,
		jwtCfg:   cfg.JWT,
		pwCfg:    cfg.Password,
		logg:     logg,
		now:      time.Now,
	}

	var stored Profile
	found, err := store.Read(ctx, storage.KeyAdminProfile, &stored)
	if err != nil {
		return nil, err
	}
	if found && stored.Email != "" && stored.PasswordHash != "" {
		s.profile = stored
		return s, nil
	}

	hash, err := security.HashPassword(cfg.Admin.BootstrapPassword, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing bootstrap password: %w", err)
	}
	s.profile = Profile{
		Email:        cfg.Admin.BootstrapEmail,
		PasswordHash: hash,
	}
	if err := store.Write(ctx, storage.KeyAdminProfile, s.profile); err != nil {
		return nil, err
	}
	if logg != nil {
		logg.Warn(ctx, "admin account bootstrapped with default credentials, change them")
	}

	return s, nil
}

// Login verifies credentials, starts the single admin session, and mints
// a JWT whose jti is the session id.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	s.mu.RLock()
	profile := s.profile
	s.mu.RUnlock()

	match, err := security.VerifyPassword(password, profile.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if email != profile.Email || !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	sessionID, err := s.sessions.Start(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		Email: profile.Email,
		JTI:   sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.jwtCfg.Expiration()),
		Email:     profile.Email,
	}, nil
}

// Logout revokes the persisted session. Outstanding tokens stop working
// because their jti no longer matches any session.
func (s *service) Logout(ctx context.Context) error {
	return s.sessions.Revoke(ctx)
}

func (s *service) Profile(_ context.Context) PublicProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PublicProfile{Email: s.profile.Email, Image: s.profile.Image}
}

// UpdateProfile applies account changes atomically: the new profile is
// persisted first and only then replaces the in-memory one.
func (s *service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*PublicProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.profile
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		next.Email = email
	}
	if input.Image != nil {
		next.Image = *input.Image
	}

	if input.NewPassword != "" {
		if input.NewPassword != input.ConfirmPassword {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "new password and confirmation do not match")
		}
		match, err := security.VerifyPassword(input.CurrentPassword, s.profile.PasswordHash)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
		}
		if !match {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
		}
		hash, err := security.HashPassword(input.NewPassword, s.pwCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
		}
		next.PasswordHash = hash
	}

	if err := s.store.Write(ctx, storage.KeyAdminProfile, next); err != nil {
		return nil, err
	}
	s.profile = next

	return &PublicProfile{Email: next.Email, Image: next.Image}, nil
}
