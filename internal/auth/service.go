// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

const resetTokenLifetime = time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name, role string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Mailer interface {
	SendPasswordResetEmail(to, userName, resetURL string) error
}

type Service struct {
	repo         Repository
	jwt          *JWTManager
	userProvider UserProvider
	mailer       Mailer
	activities   *activity.Service
	baseURL      string
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	userProvider UserProvider,
	mailer Mailer,
	activities *activity.Service,
	baseURL string,
) *Service {
	return &Service{
		repo:         repo,
		jwt:          jwt,
		userProvider: userProvider,
		mailer:       mailer,
		activities:   activities,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = "basic"
	}

	// Super admin accounts are granted by an existing super admin, never
	// self-registered.
	if role == "super_admin" {
		return nil, fmt.Errorf(
			"register: super_admin cannot be self-assigned: %w",
			core.ErrInvalidInput,
		)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Name, role)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.activities.Record(ctx, activity.Entry{
		UserID:   user.ID,
		UserName: user.Name,
		Action:   activity.ActionRegister,
		Resource: activity.ResourceAuth,
		Detail:   "account registered",
	})

	return s.createAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	s.activities.Record(ctx, activity.Entry{
		UserID:   user.ID,
		UserName: user.Name,
		Action:   activity.ActionLogin,
		Resource: activity.ResourceAuth,
		Detail:   "signed in",
	})

	return s.createAuthResponse(user)
}

// ForgotPassword never reveals whether the email matched an account. A store
// failure still surfaces as an error; a missing account does not.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userProvider.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil
	}

	token, err := core.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(resetTokenLifetime)
	if err := s.repo.SetResetToken(ctx, user.ID, core.HashToken(token), expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)

	// Email dispatch is best-effort: a mailer failure is logged but does not
	// fail the request, so the response cannot be used to probe accounts.
	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, resetURL); err != nil {
		slog.Warn("failed to send password reset email", "error", err)
	}

	return nil
}

// ValidateResetToken checks a token without consuming it and returns a masked
// account identity for display.
func (s *Service) ValidateResetToken(
	ctx context.Context,
	token string,
) (*ResetTokenStatusResponse, error) {
	info, err := s.findLiveResetToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return &ResetTokenStatusResponse{
		Valid: true,
		Email: maskEmail(info.Email),
	}, nil
}

func (s *Service) ResetPassword(
	ctx context.Context,
	token, password string,
) error {
	info, err := s.findLiveResetToken(ctx, token)
	if err != nil {
		return err
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, info.UserID, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Consume the token so it cannot be replayed.
	if err := s.repo.ClearResetToken(ctx, info.UserID); err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}

	s.activities.Record(ctx, activity.Entry{
		UserID:   info.UserID,
		UserName: info.Name,
		Action:   activity.ActionPasswordReset,
		Resource: activity.ResourceAuth,
		Detail:   "password reset completed",
	})

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) findLiveResetToken(
	ctx context.Context,
	token string,
) (*ResetTokenInfo, error) {
	info, err := s.repo.FindByResetTokenHash(ctx, core.HashToken(token))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}

	if info.IsExpired() {
		return nil, ErrResetTokenInvalid
	}

	return info, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.jwt.CreateToken(TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &AuthResponse{
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		},
		Token: token,
	}, nil
}

func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***" + email[at+1:]
	}
	return email[:1] + strings.Repeat("*", at-1) + email[at:]
}
