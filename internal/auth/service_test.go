// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

type stubUsers struct {
	byEmail map[string]*UserInfo
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	if u, ok := s.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (s *stubUsers) Create(
	_ context.Context,
	email, passwordHash, name, role string,
) (*UserInfo, error) {
	if _, ok := s.byEmail[email]; ok {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	u := &UserInfo{
		ID:           "id-" + email,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, userID, hash string) error {
	for _, u := range s.byEmail {
		if u.ID == userID {
			u.PasswordHash = hash
			return nil
		}
	}
	return fmt.Errorf("update password: %w", core.ErrNotFound)
}

type stubAuthRepo struct {
	users  *stubUsers
	tokens map[string]*ResetTokenInfo
}

func (r *stubAuthRepo) SetResetToken(
	_ context.Context,
	userID, tokenHash string,
	expiresAt time.Time,
) error {
	for _, u := range r.users.byEmail {
		if u.ID != userID {
			continue
		}
		// A user holds at most one live token.
		for hash, info := range r.tokens {
			if info.UserID == userID {
				delete(r.tokens, hash)
			}
		}
		r.tokens[tokenHash] = &ResetTokenInfo{
			UserID:    userID,
			Email:     u.Email,
			Name:      u.Name,
			ExpiresAt: expiresAt,
		}
		return nil
	}
	return fmt.Errorf("set reset token: %w", core.ErrNotFound)
}

func (r *stubAuthRepo) FindByResetTokenHash(
	_ context.Context,
	tokenHash string,
) (*ResetTokenInfo, error) {
	if info, ok := r.tokens[tokenHash]; ok {
		copied := *info
		return &copied, nil
	}
	return nil, fmt.Errorf("find reset token: %w", core.ErrNotFound)
}

func (r *stubAuthRepo) ClearResetToken(_ context.Context, userID string) error {
	for hash, info := range r.tokens {
		if info.UserID == userID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

type stubMailer struct {
	to       string
	resetURL string
	err      error
}

func (m *stubMailer) SendPasswordResetEmail(to, _, resetURL string) error {
	m.to = to
	m.resetURL = resetURL
	return m.err
}

type silentActivityRepo struct{}

func (silentActivityRepo) Insert(context.Context, *activity.Activity) error { return nil }
func (silentActivityRepo) List(context.Context, activity.ListParams) ([]activity.Activity, int, error) {
	return nil, 0, nil
}
func (silentActivityRepo) CountByAction(context.Context) ([]activity.ActionCount, error) {
	return nil, nil
}
func (silentActivityRepo) CountByResource(context.Context) ([]activity.ResourceCount, error) {
	return nil, nil
}
func (silentActivityRepo) TopUsers(context.Context, int) ([]activity.UserCount, error) {
	return nil, nil
}

type authFixture struct {
	svc    *Service
	users  *stubUsers
	repo   *stubAuthRepo
	mailer *stubMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := &stubUsers{byEmail: make(map[string]*UserInfo)}
	repo := &stubAuthRepo{users: users, tokens: make(map[string]*ResetTokenInfo)}
	mailer := &stubMailer{}

	svc := NewService(
		repo,
		testJWTManager(t, time.Hour),
		users,
		mailer,
		activity.NewService(silentActivityRepo{}),
		"https://tracker.example.com/",
	)

	return &authFixture{svc: svc, users: users, repo: repo, mailer: mailer}
}

func (f *authFixture) addUser(t *testing.T, email, password string, active bool) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	u := &UserInfo{
		ID:           "id-" + email,
		Email:        email,
		Name:         "Name " + email,
		PasswordHash: hash,
		Role:         "basic",
		IsActive:     active,
	}
	f.users.byEmail[email] = u
	return u
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "secret1",
		Name:     "New User",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.User.Role != "basic" {
		t.Errorf("role = %q, want basic", resp.User.Role)
	}
	if resp.Token == "" {
		t.Error("missing token")
	}

	// The issued token must verify against the same key.
	claims, err := f.svc.jwt.VerifyToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "new@example.com" {
		t.Errorf("token email = %q", claims.Email)
	}
}

func TestRegister_SuperAdminSelfAssignmentRejected(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "secret1",
		Name:     "New User",
		Role:     "super_admin",
	})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "taken@example.com", "secret1", true)

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret1",
		Name:     "Dup",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("got %v, want ErrEmailExists", err)
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "u@example.com", "right-password", true)
	f.addUser(t, "inactive@example.com", "right-password", false)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "u@example.com", "right-password", nil},
		{"wrong password", "u@example.com", "wrong", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "whatever", ErrInvalidCredentials},
		{"inactive account", "inactive@example.com", "right-password", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.Login(context.Background(), LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if resp.Token == "" {
				t.Error("missing token")
			}
		})
	}
}

func TestForgotPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "u@example.com", "secret1", true)

	if err := f.svc.ForgotPassword(context.Background(), "u@example.com"); err != nil {
		t.Fatal(err)
	}

	if f.mailer.to != "u@example.com" {
		t.Errorf("mail sent to %q", f.mailer.to)
	}
	if !strings.HasPrefix(f.mailer.resetURL, "https://tracker.example.com/reset-password?token=") {
		t.Errorf("reset url = %q", f.mailer.resetURL)
	}

	// Only the hash may be persisted.
	token := strings.TrimPrefix(
		f.mailer.resetURL,
		"https://tracker.example.com/reset-password?token=",
	)
	if _, ok := f.repo.tokens[token]; ok {
		t.Error("raw token stored instead of its hash")
	}
	if _, ok := f.repo.tokens[core.HashToken(token)]; !ok {
		t.Error("token hash not stored")
	}
}

func TestForgotPassword_UnknownAndInactiveSilent(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "inactive@example.com", "secret1", false)

	if err := f.svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Errorf("unknown email: %v", err)
	}
	if err := f.svc.ForgotPassword(context.Background(), "inactive@example.com"); err != nil {
		t.Errorf("inactive account: %v", err)
	}
	if len(f.repo.tokens) != 0 {
		t.Error("no token should be stored")
	}
	if f.mailer.to != "" {
		t.Error("no mail should be sent")
	}
}

func TestForgotPassword_MailerFailureSwallowed(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "u@example.com", "secret1", true)
	f.mailer.err = errors.New("smtp down")

	if err := f.svc.ForgotPassword(context.Background(), "u@example.com"); err != nil {
		t.Errorf("mailer failure must not surface: %v", err)
	}
	if len(f.repo.tokens) != 1 {
		t.Error("token should still be stored")
	}
}

func TestValidateResetToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "someone@example.com", "secret1", true)

	if err := f.svc.ForgotPassword(context.Background(), "someone@example.com"); err != nil {
		t.Fatal(err)
	}
	token := strings.TrimPrefix(
		f.mailer.resetURL,
		"https://tracker.example.com/reset-password?token=",
	)

	status, err := f.svc.ValidateResetToken(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Valid {
		t.Error("token should be valid")
	}
	if status.Email != "s******@example.com" {
		t.Errorf("masked email = %q", status.Email)
	}

	// Validation does not consume the token.
	if _, err := f.svc.ValidateResetToken(context.Background(), token); err != nil {
		t.Errorf("second validation failed: %v", err)
	}

	if _, err := f.svc.ValidateResetToken(context.Background(), "bogus"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("bogus token: got %v, want ErrResetTokenInvalid", err)
	}
}

func TestValidateResetToken_Expired(t *testing.T) {
	f := newAuthFixture(t)
	u := f.addUser(t, "u@example.com", "secret1", true)

	f.repo.tokens[core.HashToken("stale")] = &ResetTokenInfo{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	_, err := f.svc.ValidateResetToken(context.Background(), "stale")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("got %v, want ErrResetTokenInvalid", err)
	}
}

func TestResetPassword_ConsumesToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "u@example.com", "old-password", true)

	if err := f.svc.ForgotPassword(context.Background(), "u@example.com"); err != nil {
		t.Fatal(err)
	}
	token := strings.TrimPrefix(
		f.mailer.resetURL,
		"https://tracker.example.com/reset-password?token=",
	)

	if err := f.svc.ResetPassword(context.Background(), token, "new-password"); err != nil {
		t.Fatal(err)
	}

	// New password works, old one does not.
	if _, err := f.svc.Login(context.Background(), LoginRequest{
		Email:    "u@example.com",
		Password: "new-password",
	}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := f.svc.Login(context.Background(), LoginRequest{
		Email:    "u@example.com",
		Password: "old-password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login with old password: got %v", err)
	}

	// Replay is refused.
	if err := f.svc.ResetPassword(context.Background(), token, "again"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("replayed token: got %v, want ErrResetTokenInvalid", err)
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"someone@example.com", "s******@example.com"},
		{"ab@example.com", "a*@example.com"},
		{"a@example.com", "***example.com"},
	}

	for _, tt := range tests {
		if got := maskEmail(tt.in); got != tt.want {
			t.Errorf("maskEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
