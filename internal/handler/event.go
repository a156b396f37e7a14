package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"jahayeon_backend/internal/httputil"
	"jahayeon_backend/internal/model"
	"jahayeon_backend/internal/service"
	"jahayeon_backend/internal/transport/http/middleware"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List returns all open (non-expired) events.
// GET /api/v1/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List events: %v", err)
		httputil.WriteInternalError(w, "Failed to list events")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

// Create publishes a new event.
// POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	event, err := h.eventService.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		log.Printf("[ERROR] Create event: %v", err)
		httputil.WriteInternalError(w, "Failed to create event")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, event)
}

// Detail returns a single event with its image gallery.
// GET /api/v1/events/{eventID}
func (h *EventHandler) Detail(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseID(w, r, "eventID")
	if !ok {
		return
	}

	event, err := h.eventService.Detail(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			httputil.WriteNotFound(w, "Event not found")
			return
		}
		log.Printf("[ERROR] Event detail: %v", err)
		httputil.WriteInternalError(w, "Failed to get event")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, event)
}

// My returns the events the caller has started or completed.
// GET /api/v1/events/my
func (h *EventHandler) My(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	events, err := h.eventService.My(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] My events: %v", err)
		httputil.WriteInternalError(w, "Failed to list events")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

// Join registers the caller as a participant of an open event.
// POST /api/v1/events/{eventID}/join
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	eventID, ok := parseID(w, r, "eventID")
	if !ok {
		return
	}

	event, err := h.eventService.Join(r.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEventNotFound):
			httputil.WriteNotFound(w, "Event not found")
		case errors.Is(err, model.ErrEventExpired):
			httputil.WriteBadRequest(w, "Event has expired")
		case errors.Is(err, model.ErrEventFull):
			httputil.WriteBadRequest(w, "Event is full")
		case errors.Is(err, model.ErrAlreadyJoined):
			httputil.WriteBadRequest(w, "Already joined this event")
		default:
			log.Printf("[ERROR] Join event: %v", err)
			httputil.WriteInternalError(w, "Failed to join event")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, event)
}

// Complete verifies the submitted answer key and records completion,
// awarding the participant's level and coins.
// POST /api/v1/events/{eventID}/complete
func (h *EventHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	eventID, ok := parseID(w, r, "eventID")
	if !ok {
		return
	}

	var req struct {
		AnswerKey string `json:"answer_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.AnswerKey == "" {
		httputil.WriteBadRequest(w, "Answer key is required")
		return
	}

	event, err := h.eventService.Complete(r.Context(), eventID, userID, req.AnswerKey)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEventNotFound):
			httputil.WriteNotFound(w, "Event not found")
		case errors.Is(err, model.ErrWrongAnswerKey):
			httputil.WriteBadRequest(w, "Wrong answer key")
		case errors.Is(err, model.ErrAlreadyCompleted):
			httputil.WriteBadRequest(w, "Event already completed")
		case errors.Is(err, model.ErrNotJoined):
			httputil.WriteBadRequest(w, "Join the event before completing it")
		default:
			log.Printf("[ERROR] Complete event: %v", err)
			httputil.WriteInternalError(w, "Failed to complete event")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, event)
}

// parseID reads a positive integer URL parameter, writing a 400 on failure.
func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteBadRequest(w, "Invalid "+param)
		return 0, false
	}
	return id, true
}
