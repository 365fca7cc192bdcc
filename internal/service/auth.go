package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/repo"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/events"
	pkg_hash "github.com/Skotchmaster/shoe_store/pkg/hash"
	jwthelp "github.com/Skotchmaster/shoe_store/pkg/jwt"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
	"github.com/Skotchmaster/shoe_store/pkg/tokens"
)

// CredentialSource is one table of login-capable accounts.
type CredentialSource interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, acc *models.Account) error
	DefaultRole() string
}

type AuthService struct {
	Repo   *repo.GormRepo
	Users  CredentialSource
	Admins CredentialSource
	Events events.Publisher

	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	Now func() time.Time
}

type LoginResult struct {
	tokens.Pair
	User transport.PublicUser
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func publicUser(a *models.Account) transport.PublicUser {
	return transport.PublicUser{
		ID:        a.ID.String(),
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
	}
}

func (s *AuthService) sources() []CredentialSource {
	return []CredentialSource{s.Users, s.Admins}
}

// find looks the email up in users first, then admins.
func (s *AuthService) find(ctx context.Context, email string) (*models.Account, error) {
	for _, src := range s.sources() {
		acc, err := src.FindByEmail(ctx, email)
		if err == nil {
			return acc, nil
		}
		if !repo.IsNotFound(err) {
			return nil, err
		}
	}
	return nil, nil
}

func (s *AuthService) Exists(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, fmt.Errorf("%w: email required", ErrValidation)
	}
	acc, err := s.find(ctx, email)
	if err != nil {
		return false, fmt.Errorf("lookup email: %w", err)
	}
	return acc != nil, nil
}

func (s *AuthService) Register(ctx context.Context, in transport.RegisterRequest) (*transport.PublicUser, error) {
	return s.create(ctx, s.Users, in, "user_registered")
}

// CreateAdmin provisions an admin account. Callers gate it behind configuration.
func (s *AuthService) CreateAdmin(ctx context.Context, in transport.RegisterRequest) (*transport.PublicUser, error) {
	return s.create(ctx, s.Admins, in, "admin_created")
}

func (s *AuthService) create(ctx context.Context, dst CredentialSource, in transport.RegisterRequest, eventType string) (*transport.PublicUser, error) {
	l := logging.FromContext(ctx).With("svc", "auth."+eventType)

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	existing, err := s.find(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		l.Warn("register_error", "status", 409, "reason", "email already in use")
		return nil, fmt.Errorf("%w: Email already in use", ErrConflict)
	}

	pwHash, err := pkg_hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acc := &models.Account{
		Email:        email,
		PasswordHash: pwHash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         dst.DefaultRole(),
	}
	if err := dst.Create(ctx, acc); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: Email already in use", ErrConflict)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	pu := publicUser(acc)
	publish(ctx, s.Events, events.TopicUsers, pu.ID, eventType, map[string]any{
		"id":    pu.ID,
		"email": pu.Email,
		"role":  pu.Role,
	})
	return &pu, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	acc, err := s.find(ctx, email)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if acc == nil || !pkg_hash.CheckPassword(acc.PasswordHash, password) {
		l.Warn("login_error", "status", 401, "reason", "invalid credentials")
		return nil, fmt.Errorf("%w: Invalid credentials", ErrUnauthorized)
	}

	pair, err := s.issue(ctx, acc.ID.String(), acc.Role)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return nil, err
	}
	return &LoginResult{Pair: *pair, User: publicUser(acc)}, nil
}

// issue signs a new access/refresh pair and stores the refresh token's hash.
func (s *AuthService) issue(ctx context.Context, subject, role string) (*tokens.Pair, error) {
	now := s.now()
	accessExp := now.Add(s.AccessTTL)
	refreshExp := now.Add(s.RefreshTTL)

	access, err := tokens.SignAccess(s.AccessSecret, subject, role, accessExp)
	if err != nil {
		return nil, fmt.Errorf("sign access: %w", err)
	}
	jti := jwthelp.NewJTI()
	refresh, err := tokens.SignRefresh(s.RefreshSecret, subject, role, jti, refreshExp)
	if err != nil {
		return nil, fmt.Errorf("sign refresh: %w", err)
	}
	if err := s.Repo.SaveRefreshToken(ctx, &models.RefreshToken{
		JTI:       jti,
		TokenHash: jwthelp.Sha256Hex(refresh),
		Subject:   subject,
		Role:      role,
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &tokens.Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// RefreshTokens revokes the presented refresh token and issues a new pair.
// A token can be rotated only once.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	stored, err := s.lookupRefresh(ctx, refreshToken)
	if err != nil {
		l.Warn("refresh_error", "status", 401, "error", err)
		return nil, err
	}
	if err := s.Repo.RevokeRefreshToken(ctx, stored.JTI, s.now()); err != nil {
		if repo.IsNotFound(err) {
			l.Warn("refresh_error", "status", 401, "reason", "token expired or revoked", "jti", stored.JTI)
			return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrUnauthorized)
		}
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.issue(ctx, stored.Subject, stored.Role)
}

// Logout revokes the refresh token. Revoking an already revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	stored, err := s.lookupRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := s.Repo.RevokeRefreshToken(ctx, stored.JTI, s.now()); err != nil && !repo.IsNotFound(err) {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) lookupRefresh(ctx context.Context, refreshToken string) (*models.RefreshToken, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh token required", ErrUnauthorized)
	}
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	stored, err := s.Repo.FindRefreshToken(ctx, claims.ID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: refresh token not found", ErrUnauthorized)
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	if stored.TokenHash != jwthelp.Sha256Hex(refreshToken) {
		return nil, fmt.Errorf("%w: refresh token mismatch", ErrUnauthorized)
	}
	return stored, nil
}
