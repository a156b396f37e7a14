package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jahayeon_backend/internal/config"
	"jahayeon_backend/internal/model"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: 2592000,
	}
}

// =============================================================================
// TOKEN PAIR GENERATION
// =============================================================================

func TestAuthService_GenerateTokenPair(t *testing.T) {
	var storedToken *model.RefreshToken
	mockRepo := &mockRefreshTokenRepository{
		createFn: func(ctx context.Context, token *model.RefreshToken) error {
			token.ID = "rt-1"
			storedToken = token
			return nil
		},
	}
	svc := NewAuthService(mockRepo, newMockBlacklist(), testAuthConfig())

	pair, err := svc.GenerateTokenPair(context.Background(), "user-1", "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be set")
	}
	if pair.ExpiresIn != 900 {
		t.Errorf("expires_in = %d, want 900", pair.ExpiresIn)
	}

	// The access token must be a valid HS256 JWT carrying the user id
	token, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token should verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != "user-1" {
		t.Errorf("user_id claim = %v, want user-1", claims["user_id"])
	}

	// The refresh token is stored hashed, never raw
	if storedToken == nil {
		t.Fatal("refresh token was not persisted")
	}
	if storedToken.TokenHash == pair.RefreshToken {
		t.Error("refresh token must be stored as a hash")
	}
	if storedToken.DeviceInfo == nil || *storedToken.DeviceInfo != "test-agent" {
		t.Errorf("device_info = %v, want test-agent", storedToken.DeviceInfo)
	}
}

// =============================================================================
// REFRESH ROTATION AND REUSE DETECTION
// =============================================================================

func TestAuthService_RefreshTokens(t *testing.T) {
	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	tests := []struct {
		name          string
		stored        *model.RefreshToken
		storedErr     error
		wantErr       error
		wantRevokeAll bool
	}{
		{
			name:   "valid token rotates",
			stored: &model.RefreshToken{ID: "rt-1", UserID: "user-1", ExpiresAt: now.Add(time.Hour)},
		},
		{
			name:      "unknown token",
			storedErr: model.ErrRefreshTokenNotFound,
			wantErr:   model.ErrRefreshTokenNotFound,
		},
		{
			name:    "expired token",
			stored:  &model.RefreshToken{ID: "rt-1", UserID: "user-1", ExpiresAt: now.Add(-time.Hour)},
			wantErr: model.ErrRefreshTokenExpired,
		},
		{
			name:          "revoked token reuse revokes the family",
			stored:        &model.RefreshToken{ID: "rt-1", UserID: "user-1", ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
			wantErr:       model.ErrRefreshTokenReused,
			wantRevokeAll: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revoked := false
			mockRepo := &mockRefreshTokenRepository{
				findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
					if tt.storedErr != nil {
						return nil, tt.storedErr
					}
					// First lookup resolves the presented token; the rotation
					// lookup for replaced_by may miss, which is tolerated.
					if tt.stored != nil && !revoked {
						return tt.stored, nil
					}
					return nil, model.ErrRefreshTokenNotFound
				},
				revokeFn: func(ctx context.Context, id string, replacedBy *string) error {
					revoked = true
					return nil
				},
			}
			svc := NewAuthService(mockRepo, newMockBlacklist(), testAuthConfig())

			pair, userID, err := svc.RefreshTokens(context.Background(), "raw-refresh-token", "", "")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				if tt.wantRevokeAll && len(mockRepo.revokeAllCalls) != 1 {
					t.Error("reuse should revoke every token the user holds")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pair == nil || pair.AccessToken == "" {
				t.Fatal("expected a fresh token pair")
			}
			if userID != "user-1" {
				t.Errorf("user id = %q, want user-1", userID)
			}
		})
	}
}

// =============================================================================
// ACCESS TOKEN BLACKLIST
// =============================================================================

func TestAuthService_BlacklistAccessToken(t *testing.T) {
	blacklist := newMockBlacklist()
	svc := NewAuthService(&mockRefreshTokenRepository{}, blacklist, testAuthConfig())

	pair, err := svc.GenerateTokenPair(context.Background(), "user-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.BlacklistAccessToken(context.Background(), pair.AccessToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, _ := blacklist.Contains(context.Background(), pair.AccessToken)
	if !found {
		t.Error("token should be blacklisted after logout")
	}
}

func TestAuthService_BlacklistAccessToken_IgnoresGarbage(t *testing.T) {
	blacklist := newMockBlacklist()
	svc := NewAuthService(&mockRefreshTokenRepository{}, blacklist, testAuthConfig())

	// Malformed tokens are dropped silently: logout still succeeds
	if err := svc.BlacklistAccessToken(context.Background(), "not-a-jwt"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(blacklist.tokens) != 0 {
		t.Error("garbage tokens should not be blacklisted")
	}
}
