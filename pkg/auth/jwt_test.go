package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "zombiescan-test",
		Expiration: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{RoleOperator})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("user ID = %v, want %v", claims.UserID, userID)
	}
	if !claims.HasRole(RoleOperator) {
		t.Error("expected operator role")
	}
	if claims.HasRole(RoleAdmin) {
		t.Error("did not expect admin role")
	}
	if claims.Issuer != "zombiescan-test" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken(uuid.New(), []string{RoleAuditor})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other, err := NewJWTService(JWTConfig{Secret: "different-secret"})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Expiration: -time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	token, err := svc.GenerateToken(uuid.New(), nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expected expired token to fail validation")
	}
}

func TestNewJWTServiceRequiresKeyMaterial(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{}); err == nil {
		t.Error("expected an error with no key material")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("expected garbage token to fail")
	}
}
