package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/story"
)

// SaveHandler handles the single fixed save slot.
//
// Routes:
//
//	POST /v1/save - snapshot a session into the slot, overwriting any prior save
//	POST /v1/load - restore the slot into a live session
type SaveHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

type SaveRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id" validate:"required"`
}

// LoadResponse returns the restored record. The game state inside it is
// re-registered under its original id, so the client resumes against the
// same session key it saved with.
type LoadResponse struct {
	Record *storage.SaveRecord `json:"record"`
}

func NewSaveHandler(st storage.Storage, logger *slog.Logger) *SaveHandler {
	return &SaveHandler{
		storage: st,
		logger:  logger,
	}
}

func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	switch r.URL.Path {
	case "/v1/save":
		h.save(w, r)
	case "/v1/load":
		h.load(w, r)
	default:
		respondError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *SaveHandler) save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "gamestate_id is required")
		return
	}

	gs, err := h.storage.LoadGameState(r.Context(), req.GameStateID)
	if err != nil {
		h.logger.Error("Failed to load game state", "error", err, "game_state_id", req.GameStateID.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if gs == nil {
		respondError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	rec := &storage.SaveRecord{
		GameState: gs,
		Timestamp: time.Now().UTC(),
	}
	if gs.LastTitle != "" || gs.LastNarrative != "" {
		rec.Segment = &story.Segment{
			Title:     gs.LastTitle,
			Narrative: gs.LastNarrative,
			Choices:   gs.LastChoices,
		}
	}
	img, err := h.storage.LoadSceneImage(r.Context(), gs.ID)
	if err != nil {
		h.logger.Warn("Failed to load scene image for save", "error", err, "game_state_id", gs.ID.String())
	} else if img != nil && img.Turn == gs.TurnCount {
		rec.Image = img.Image
	}

	if err := h.storage.WriteSaveSlot(r.Context(), rec); err != nil {
		h.logger.Error("Failed to write save slot", "error", err, "game_state_id", gs.ID.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to write save")
		return
	}
	h.logger.Info("Game saved", "game_state_id", gs.ID.String(), "turn_count", gs.TurnCount)
	respondJSON(w, h.logger, http.StatusOK, rec)
}

func (h *SaveHandler) load(w http.ResponseWriter, r *http.Request) {
	rec, err := h.storage.ReadSaveSlot(r.Context())
	if err != nil {
		h.logger.Error("Failed to read save slot", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to read save")
		return
	}
	if rec == nil || rec.GameState == nil {
		respondError(w, h.logger, http.StatusNotFound, "No save exists")
		return
	}

	// Re-register the session so action requests resolve against it.
	rec.GameState.Normalize()
	if err := h.storage.SaveGameState(r.Context(), rec.GameState.ID, rec.GameState); err != nil {
		h.logger.Error("Failed to restore game state", "error", err, "game_state_id", rec.GameState.ID.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to restore game state")
		return
	}
	h.logger.Info("Game loaded", "game_state_id", rec.GameState.ID.String(), "turn_count", rec.GameState.TurnCount)
	respondJSON(w, h.logger, http.StatusOK, LoadResponse{Record: rec})
}
