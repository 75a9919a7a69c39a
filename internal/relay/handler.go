package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler serves the generation endpoint. A nil Generator means the server
// runs without AI credentials; requests then fail with a configuration error.
type Handler struct {
	gen    Generator
	logger *slog.Logger
}

// NewHandler creates the generation handler.
func NewHandler(gen Generator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{gen: gen, logger: logger}
}

type generateRequest struct {
	Prompt            string `json:"prompt"`
	SystemInstruction string `json:"systemInstruction"`
}

// ServeHTTP handles POST /api/generate. The response is plain chunked text:
// headers are committed when the first upstream chunk arrives, so errors
// before that point are reported as JSON while a mid-stream failure aborts
// the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSONError(w, http.StatusMethodNotAllowed, "Method "+r.Method+" Not Allowed")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		writeJSONError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	if h.gen == nil {
		h.logger.Error("generation requested without configured API key")
		writeJSONError(w, http.StatusInternalServerError,
			"Server configuration error: the GEMINI_API_KEY environment variable is not set on the server.")
		return
	}

	flusher, _ := w.(http.Flusher)
	started := false

	err := h.gen.Generate(r.Context(), req.Prompt, req.SystemInstruction, func(text string) error {
		if !started {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := w.Write([]byte(text)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		if r.Context().Err() != nil {
			h.logger.Debug("generation cancelled by client")
			return
		}
		h.logger.Error("generation failed", "error", err)
		if !started {
			writeJSONError(w, http.StatusInternalServerError, "AI service failed: "+err.Error())
			return
		}
		// Headers are already on the wire. Abort so the client sees a
		// broken stream instead of a clean end.
		panic(http.ErrAbortHandler)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
