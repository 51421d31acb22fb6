// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Vimal-ZP/Tracker-sub002/internal/config"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

func testJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privatePath, publicPath); err != nil {
		t.Fatalf("generate key pair: %v", err)
	}

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		TokenExpire:    expire,
		Issuer:         "tracker",
		Audience:       "tracker-api",
	})
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	return manager
}

func TestJWT_RoundTrip(t *testing.T) {
	manager := testJWTManager(t, time.Hour)

	token, err := manager.CreateToken(TokenClaims{
		UserID: "u-1",
		Email:  "u1@example.com",
		Name:   "User One",
		Role:   "admin",
	})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := manager.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}

	if claims.UserID != "u-1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "u1@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Name != "User One" {
		t.Errorf("Name = %q", claims.Name)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestJWT_TamperedTokenRejected(t *testing.T) {
	manager := testJWTManager(t, time.Hour)

	token, err := manager.CreateToken(TokenClaims{
		UserID: "u-1",
		Email:  "u1@example.com",
		Name:   "User One",
		Role:   "basic",
	})
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments", len(parts))
	}
	// Flip a character in the payload.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = manager.VerifyToken(context.Background(), tampered)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	manager := testJWTManager(t, -time.Minute)

	token, err := manager.CreateToken(TokenClaims{
		UserID: "u-1",
		Email:  "u1@example.com",
		Name:   "User One",
		Role:   "basic",
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = manager.VerifyToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Errorf("got %v, want ErrTokenExpired", err)
	}
}

func TestJWT_ForeignKeyRejected(t *testing.T) {
	issuing := testJWTManager(t, time.Hour)
	verifying := testJWTManager(t, time.Hour)

	token, err := issuing.CreateToken(TokenClaims{
		UserID: "u-1",
		Email:  "u1@example.com",
		Name:   "User One",
		Role:   "basic",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err = verifying.VerifyToken(context.Background(), token); err == nil {
		t.Error("token signed by a different key must not verify")
	}
}

func TestJWT_GarbageRejected(t *testing.T) {
	manager := testJWTManager(t, time.Hour)

	for _, bad := range []string{"", "not.a.token", "aaaa"} {
		if _, err := manager.VerifyToken(context.Background(), bad); err == nil {
			t.Errorf("token %q accepted", bad)
		}
	}
}

func TestJWT_KeyID(t *testing.T) {
	manager := testJWTManager(t, time.Hour)
	if manager.GetKeyID() == "" {
		t.Error("key id must be set")
	}
}
