package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"jahayeon_backend/internal/httputil"
	"jahayeon_backend/internal/model"
	"jahayeon_backend/internal/oauth"
	"jahayeon_backend/internal/service"
	"jahayeon_backend/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	google      *oauth.GoogleProvider
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, google *oauth.GoogleProvider) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		google:      google,
	}
}

// Register handles sign-up and issues the first token pair.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "Email and password are required")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPassword):
			httputil.WriteBadRequest(w, "Password must be at least 8 characters with a letter, a digit and a symbol")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteBadRequest(w, "Email is already registered")
		default:
			log.Printf("[ERROR] Register: %v", err)
			httputil.WriteInternalError(w, "Failed to register")
		}
		return
	}

	tokenPair, err := h.authService.GenerateTokenPair(r.Context(), user.UserID, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		log.Printf("[ERROR] Register tokens: %v", err)
		httputil.WriteInternalError(w, "Failed to generate tokens")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, tokenPair)
}

// Login authenticates a local account.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "Email and password are required")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			// Credential failures are 400 here, matching the mobile client's
			// error handling.
			httputil.WriteBadRequest(w, "Invalid email or password")
			return
		}
		log.Printf("[ERROR] Login: %v", err)
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	tokenPair, err := h.authService.GenerateTokenPair(r.Context(), user.UserID, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		log.Printf("[ERROR] Login tokens: %v", err)
		httputil.WriteInternalError(w, "Failed to generate tokens")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenPair)
}

// Logout revokes the refresh token and blacklists the presented access
// token for its remaining lifetime.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "Refresh token is required")
		return
	}

	if err := h.authService.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil {
		if !errors.Is(err, model.ErrRefreshTokenNotFound) {
			log.Printf("[ERROR] Logout: %v", err)
			httputil.WriteInternalError(w, "Failed to logout")
			return
		}
		// Token already revoked or unknown - logout still succeeds
	}

	if token := bearerToken(r); token != "" {
		if err := h.authService.BlacklistAccessToken(r.Context(), token); err != nil {
			log.Printf("[WARN] Logout blacklist: %v", err)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// Refresh rotates the refresh token and reissues an access token.
// POST /api/v1/auth/token/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "Refresh token is required")
		return
	}

	tokenPair, _, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRefreshTokenNotFound):
			httputil.WriteUnauthorized(w, "Invalid refresh token")
		case errors.Is(err, model.ErrRefreshTokenExpired):
			httputil.WriteUnauthorizedWithCode(w, model.CodeTokenExpired, "Refresh token has expired")
		case errors.Is(err, model.ErrRefreshTokenReused):
			httputil.WriteUnauthorizedWithCode(w, model.CodeTokenReused, "Refresh token reuse detected. Please login again.")
		default:
			log.Printf("[ERROR] Refresh: %v", err)
			httputil.WriteInternalError(w, "Failed to refresh tokens")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenPair)
}

// GoogleLogin redirects to the Google consent screen.
// GET /api/v1/auth/google/login
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.google.AuthURL(), http.StatusFound)
}

// GoogleCallback exchanges a Google access token for the app's own token
// pair, creating the account on first login.
// POST /api/v1/auth/google/callback
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.AccessToken == "" {
		httputil.WriteBadRequest(w, "Access token is required")
		return
	}

	info, err := h.google.FetchUserInfo(r.Context(), req.AccessToken)
	if err != nil {
		log.Printf("[ERROR] GoogleCallback userinfo: %v", err)
		httputil.WriteInternalError(w, "Failed to verify Google login")
		return
	}

	user, err := h.userService.GetOrCreateGoogleUser(r.Context(), info.ID, info.Email)
	if err != nil {
		log.Printf("[ERROR] GoogleCallback user: %v", err)
		httputil.WriteInternalError(w, "Failed to login with Google")
		return
	}

	tokenPair, err := h.authService.GenerateTokenPair(r.Context(), user.UserID, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		log.Printf("[ERROR] GoogleCallback tokens: %v", err)
		httputil.WriteInternalError(w, "Failed to generate tokens")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenPair)
}

// UserInfo returns the authenticated caller's public account fields.
// GET /api/v1/auth/user
func (h *AuthHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] UserInfo: %v", err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"email":          user.Email,
		"full_name":      user.FullName,
		"oauth_provider": user.OAuthProvider,
	})
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// clientIP extracts the client IP from the request.
func clientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr is "IP:port"
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
