// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s *stubVerifier) VerifyToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{name: "bearer header", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "header only no scheme", header: "abc123", want: ""},
		{name: "cookie fallback", cookie: "cookie-token", want: "cookie-token"},
		{
			name:   "header beats cookie",
			header: "Bearer header-token",
			cookie: "cookie-token",
			want:   "header-token",
		},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tt.cookie})
			}

			if got := ExtractToken(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthenticator_MissingToken(t *testing.T) {
	handler := Authenticator(&stubVerifier{})(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: core.ErrTokenInvalid}
	handler := Authenticator(verifier)(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bad")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticator_PopulatesContext(t *testing.T) {
	verifier := &stubVerifier{claims: &AccessTokenClaims{
		UserID: "u-1",
		Email:  "u1@example.com",
		Name:   "User One",
		Role:   RoleAdmin,
	}}

	var gotID, gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotRole = GetUserRole(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer good")

	w := httptest.NewRecorder()
	Authenticator(verifier)(inner).ServeHTTP(w, r)

	if gotID != "u-1" || gotRole != RoleAdmin {
		t.Errorf("context carries id=%q role=%q", gotID, gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{"no identity", "", RequireAdmin, http.StatusUnauthorized},
		{"basic blocked from admin", RoleBasic, RequireAdmin, http.StatusForbidden},
		{"admin passes admin", RoleAdmin, RequireAdmin, http.StatusOK},
		{"super admin passes admin", RoleSuperAdmin, RequireAdmin, http.StatusOK},
		{"admin blocked from super admin", RoleAdmin, RequireSuperAdmin, http.StatusForbidden},
		{"super admin passes super admin", RoleSuperAdmin, RequireSuperAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != "" {
				ctx := withClaims(r.Context(), &AccessTokenClaims{
					UserID: "u-1",
					Role:   tt.role,
				})
				r = r.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			tt.middleware(okHandler()).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
