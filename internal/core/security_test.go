// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("same input")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ by salt")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, bad := range []string{"", "plainhash", "$argon2i$v=19$m=1,t=1,p=1$x$y"} {
		if _, err := VerifyPassword("pw", bad); err == nil {
			t.Errorf("hash %q: expected an error", bad)
		}
	}
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyPasswordTimingSafe("secret", &hash)
	if err != nil || !ok {
		t.Errorf("valid credentials: ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPasswordTimingSafe("wrong", &hash)
	if err != nil || ok {
		t.Errorf("wrong password: ok=%v err=%v", ok, err)
	}

	// Missing account still returns cleanly, never a match.
	ok, err = VerifyPasswordTimingSafe("secret", nil)
	if err != nil || ok {
		t.Errorf("nil hash: ok=%v err=%v", ok, err)
	}

	empty := ""
	ok, err = VerifyPasswordTimingSafe("secret", &empty)
	if err != nil || ok {
		t.Errorf("empty hash: ok=%v err=%v", ok, err)
	}
}

func TestTokenHashing(t *testing.T) {
	token, err := GenerateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	hash := HashToken(token)
	if hash == token {
		t.Error("hash must differ from the token")
	}
	if !CompareTokenHash(token, hash) {
		t.Error("token does not match its own hash")
	}
	if CompareTokenHash("other-token", hash) {
		t.Error("foreign token matched")
	}

	// Hashing is deterministic so the stored hash can be looked up.
	if HashToken(token) != hash {
		t.Error("hash not deterministic")
	}
}

func TestGenerateSecureToken_Unique(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two generated tokens collided")
	}
}
