package handler

import (
	"io"
	"log"
	"net/http"
	"strings"

	"jahayeon_backend/internal/httputil"
	"jahayeon_backend/internal/llm"
	"jahayeon_backend/internal/model"
)

// AIHandler proxies prompts to the configured generative-model backends.
// Provider failures are deliberately soft: the client gets a 200 with a
// null response so a model outage never breaks the app screen.
type AIHandler struct {
	openai Provider
	gemini Provider
}

// Provider aliases llm.Provider so tests can stub the backends.
type Provider = llm.Provider

func NewAIHandler(openai, gemini Provider) *AIHandler {
	return &AIHandler{openai: openai, gemini: gemini}
}

// OpenAI handles prompts against the OpenAI backend.
// POST /api/v1/ai/gpt/generate
func (h *AIHandler) OpenAI(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.openai)
}

// Gemini handles prompts against the Gemini backend.
// POST /api/v1/ai/gemini/generate
func (h *AIHandler) Gemini(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.gemini)
}

// generate reads a multipart form with a "text" field and an optional
// "image" file, forwards both to the provider and writes the text back.
func (h *AIHandler) generate(w http.ResponseWriter, r *http.Request, provider Provider) {
	if err := r.ParseMultipartForm(model.MaxPhotoSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	prompt := strings.TrimSpace(r.FormValue("text"))
	if prompt == "" {
		httputil.WriteBadRequest(w, "Text prompt is required")
		return
	}

	var image []byte
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image, err = io.ReadAll(io.LimitReader(file, model.MaxPhotoSizeBytes+1))
		if err != nil {
			httputil.WriteBadRequest(w, "Failed to read image")
			return
		}
		if int64(len(image)) > model.MaxPhotoSizeBytes {
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Image exceeds the 10MB limit")
			return
		}
	}

	text, err := provider.Generate(r.Context(), prompt, image)
	if err != nil {
		log.Printf("[WARN] %s generate: %v", provider.Name(), err)
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"response": nil,
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"response": text,
	})
}
