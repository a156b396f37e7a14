package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"jahayeon_backend/internal/httputil"
	"jahayeon_backend/internal/model"
	"jahayeon_backend/internal/service"
	"jahayeon_backend/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile returns the caller's gamification profile.
// GET /api/v1/users/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	profile, err := h.userService.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Profile: %v", err)
		httputil.WriteInternalError(w, "Failed to get profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// UpdateNickname changes the caller's display nickname.
// PATCH /api/v1/users/profile
func (h *UserHandler) UpdateNickname(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		httputil.WriteBadRequest(w, "Nickname is required")
		return
	}
	if utf8.RuneCountInString(nickname) > 30 {
		httputil.WriteBadRequest(w, "Nickname must be at most 30 characters")
		return
	}

	if err := h.userService.UpdateNickname(r.Context(), userID, nickname); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] UpdateNickname: %v", err)
		httputil.WriteInternalError(w, "Failed to update nickname")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Nickname updated successfully",
	})
}

// History returns the ids of parties and completed events the caller
// took part in, with a combined count.
// GET /api/v1/users/history
func (h *UserHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	history, err := h.userService.History(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] History: %v", err)
		httputil.WriteInternalError(w, "Failed to get history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, history)
}
