package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jahayeon_backend/internal/httputil"
	"jahayeon_backend/internal/model"
	"jahayeon_backend/internal/service"
	"jahayeon_backend/internal/transport/http/middleware"
)

type PartyHandler struct {
	partyService *service.PartyService
}

func NewPartyHandler(partyService *service.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// List returns every party still recruiting or ongoing.
// GET /api/v1/parties
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	parties, err := h.partyService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List parties: %v", err)
		httputil.WriteInternalError(w, "Failed to list parties")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"parties": parties,
	})
}

// Create opens a new party with the caller as organizer. The nearest
// parking spot is computed server-side from the destination coordinates.
// POST /api/v1/parties
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	party, err := h.partyService.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		log.Printf("[ERROR] Create party: %v", err)
		httputil.WriteInternalError(w, "Failed to create party")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, party)
}

// Detail returns a party with the caller's available action.
// GET /api/v1/parties/{partyID}
func (h *PartyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	partyID, ok := parseID(w, r, "partyID")
	if !ok {
		return
	}

	party, err := h.partyService.Detail(r.Context(), partyID, userID)
	if err != nil {
		if errors.Is(err, model.ErrPartyNotFound) {
			httputil.WriteNotFound(w, "Party not found")
			return
		}
		log.Printf("[ERROR] Party detail: %v", err)
		httputil.WriteInternalError(w, "Failed to get party")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, party)
}

// Join adds the caller as a participant while recruiting.
// POST /api/v1/parties/{partyID}/join
func (h *PartyHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	partyID, ok := parseID(w, r, "partyID")
	if !ok {
		return
	}

	party, err := h.partyService.Join(r.Context(), partyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPartyNotFound):
			httputil.WriteNotFound(w, "Party not found")
		case errors.Is(err, model.ErrPartyNotRecruiting):
			httputil.WriteBadRequest(w, "Party is no longer recruiting")
		case errors.Is(err, model.ErrAlreadyJoined):
			httputil.WriteBadRequest(w, "Already joined this party")
		case errors.Is(err, model.ErrPartyFull):
			httputil.WriteBadRequest(w, "Party is full")
		default:
			log.Printf("[ERROR] Join party: %v", err)
			httputil.WriteInternalError(w, "Failed to join party")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, party)
}

// Start moves the party from RECRUITING to ONGOING. Organizer only.
// POST /api/v1/parties/{partyID}/start
func (h *PartyHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	partyID, ok := parseID(w, r, "partyID")
	if !ok {
		return
	}

	party, err := h.partyService.Start(r.Context(), partyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPartyNotFound):
			httputil.WriteNotFound(w, "Party not found")
		case errors.Is(err, model.ErrNotOrganizer):
			httputil.WriteForbidden(w, "Only the organizer can start the party")
		case errors.Is(err, model.ErrPartyNotRecruiting):
			httputil.WriteBadRequest(w, "Party is not recruiting")
		default:
			log.Printf("[ERROR] Start party: %v", err)
			httputil.WriteInternalError(w, "Failed to start party")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, party)
}

// EndRide marks the caller's own ride as finished while the party is
// ongoing.
// POST /api/v1/parties/{partyID}/endride
func (h *PartyHandler) EndRide(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	partyID, ok := parseID(w, r, "partyID")
	if !ok {
		return
	}

	party, err := h.partyService.FinishRide(r.Context(), partyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPartyNotFound):
			httputil.WriteNotFound(w, "Party not found")
		case errors.Is(err, model.ErrPartyNotOngoing):
			httputil.WriteBadRequest(w, "Party is not ongoing")
		case errors.Is(err, model.ErrNotOnTheWay):
			httputil.WriteBadRequest(w, "You are not on the way in this party")
		default:
			log.Printf("[ERROR] End ride: %v", err)
			httputil.WriteInternalError(w, "Failed to end ride")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, party)
}

// End completes the party with the uploaded group photo. Organizer only;
// multipart with a "photo" file field.
// POST /api/v1/parties/{partyID}/end
func (h *PartyHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	partyID, ok := parseID(w, r, "partyID")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(model.MaxPhotoSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		httputil.WriteBadRequest(w, "A group photo is required")
		return
	}
	defer file.Close()

	party, err := h.partyService.End(r.Context(), partyID, userID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPartyNotFound):
			httputil.WriteNotFound(w, "Party not found")
		case errors.Is(err, model.ErrNotOrganizer):
			httputil.WriteForbidden(w, "Only the organizer can end the party")
		case errors.Is(err, model.ErrPartyNotOngoing):
			httputil.WriteBadRequest(w, "Party is not ongoing")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Photo exceeds the 10MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequestWithCode(w, model.CodeInvalidImageType, "Photo must be a JPEG, PNG, GIF or WebP image")
		default:
			log.Printf("[ERROR] End party: %v", err)
			httputil.WriteInternalError(w, "Failed to end party")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, party)
}
