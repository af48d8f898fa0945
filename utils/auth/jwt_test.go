package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "alumni-connect-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := testManager()

	token, jti, err := manager.GenerateAccessToken(42, "user@example.com", "student", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if jti == "" {
		t.Error("expected a non-empty JTI")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", claims.Email)
	}
	if claims.Role != "student" {
		t.Errorf("Role = %q, want student", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("TokenVersion = %d, want 3", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims.ID = %q, want %q", claims.ID, jti)
	}
}

func TestRefreshTokenHasRefreshType(t *testing.T) {
	manager := testManager()

	token, _, err := manager.GenerateRefreshToken(7, "user@example.com", "alumni", 0)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := testManager()
	other := NewJWTManager(JWTConfig{
		Secret:        "a-different-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "alumni-connect-test",
	})

	token, _, err := manager.GenerateAccessToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        -time.Minute, // already expired
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "alumni-connect-test",
	})

	token, _, err := manager.GenerateAccessToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := manager.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := testManager()
	if _, err := manager.ValidateToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshAccessTokenRequiresRefreshType(t *testing.T) {
	manager := testManager()

	accessToken, _, err := manager.GenerateAccessToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, _, err := manager.RefreshAccessToken(accessToken, 0); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for access token, got %v", err)
	}

	refreshToken, _, err := manager.GenerateRefreshToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	newAccess, _, err := manager.RefreshAccessToken(refreshToken, 1)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}

	claims, err := manager.ValidateToken(newAccess)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 1 {
		t.Errorf("TokenVersion = %d, want 1", claims.TokenVersion)
	}
}

func TestGetTokenExpiry(t *testing.T) {
	manager := testManager()

	token, _, err := manager.GenerateAccessToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	expiry, err := manager.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("GetTokenExpiry failed: %v", err)
	}

	until := time.Until(expiry)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Errorf("expiry %v is not roughly one hour out", until)
	}
}
