package auth

import (
	"testing"
	"time"

	"github.com/RaphMerc007/WeCook/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test_secret",
		JWTIssuer:     "wecook",
		JWTTTLMinutes: 60,
	}
}

func TestIssueAndVerifyJWT(t *testing.T) {
	service := NewService(testConfig())

	token, err := service.IssueJWT("dev-user")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	subject, err := service.VerifyJWT(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if subject != "dev-user" {
		t.Errorf("expected subject=dev-user, got %s", subject)
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	service := NewService(testConfig())

	if _, err := service.VerifyJWT("not.a.token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewService(testConfig())

	otherCfg := testConfig()
	otherCfg.JWTSecret = "different_secret"
	verifier := NewService(otherCfg)

	token, err := issuer.IssueJWT("dev-user")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := verifier.VerifyJWT(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestVerifyJWTRejectsWrongIssuer(t *testing.T) {
	issuerCfg := testConfig()
	issuerCfg.JWTIssuer = "someone-else"
	issuer := NewService(issuerCfg)

	verifier := NewService(testConfig())

	token, err := issuer.IssueJWT("dev-user")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := verifier.VerifyJWT(token); err == nil {
		t.Error("expected token from another issuer to be rejected")
	}
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTTTLMinutes = 0
	service := NewService(cfg)

	token, err := service.IssueJWT("dev-user")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	time.Sleep(time.Second)
	if _, err := service.VerifyJWT(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}
