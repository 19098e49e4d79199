package security_test

import (
	"testing"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/config"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	hash, err := security.HashPassword("chamelo-aura-2024", cfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}

	ok, err := security.VerifyPassword("chamelo-aura-2024", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestCheckLength(t *testing.T) {
	cfg := config.PasswordConfig{MinLength: 6}

	if err := security.CheckLength("abc12", cfg); err == nil {
		t.Fatal("expected short password to fail")
	}
	if err := security.CheckLength("abc123", cfg); err != nil {
		t.Fatalf("expected 6-char password to pass: %v", err)
	}

	// zero MinLength falls back to the default of 6
	if err := security.CheckLength("abcde", config.PasswordConfig{}); err == nil {
		t.Fatal("expected fallback minimum to apply")
	}
}
