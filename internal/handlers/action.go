package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/engine"
	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

// ActionHandler runs one turn: POST /v1/action.
type ActionHandler struct {
	processor *engine.TurnProcessor
	logger    *slog.Logger
}

// ActionRequest is a player action against a session.
type ActionRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id" validate:"required"`
	Action      string    `json:"action" validate:"required,max=512"`
}

// ActionResponse is the committed turn.
type ActionResponse struct {
	GameState        *state.GameState `json:"game_state"`
	Segment          *story.Segment   `json:"segment"`
	Fallback         bool             `json:"fallback,omitempty"`
	LoreAdded        int              `json:"lore_added,omitempty"`
	CombatStarted    bool             `json:"combat_started,omitempty"`
	CombatEnded      bool             `json:"combat_ended,omitempty"`
	SoundEnvironment string           `json:"sound_environment,omitempty"`
}

func NewActionHandler(processor *engine.TurnProcessor, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'gamestate_id' and 'action'.")
		return
	}
	if req.GameStateID == uuid.Nil || req.Action == "" {
		respondError(w, h.logger, http.StatusBadRequest, "gamestate_id and action are required")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "action exceeds the allowed length")
		return
	}

	res, err := h.processor.ProcessAction(r.Context(), req.GameStateID, req.Action)
	if err != nil {
		if errors.Is(err, engine.ErrTurnInFlight) {
			respondError(w, h.logger, http.StatusConflict, "A turn is already in progress. Wait for it to finish.")
			return
		}
		if errors.Is(err, engine.ErrSessionNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "Game state not found")
			return
		}
		h.logger.Error("Failed to process action", "error", err, "game_state_id", req.GameStateID.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to process action")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, ActionResponse{
		GameState:        res.GameState,
		Segment:          res.Segment,
		Fallback:         res.Fallback,
		LoreAdded:        res.LoreAdded,
		CombatStarted:    res.CombatStarted,
		CombatEnded:      res.CombatEnded,
		SoundEnvironment: res.SoundEnvironment,
	})
}
