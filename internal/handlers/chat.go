package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/services"
	"github.com/infinite-realms/engine/internal/storage"
)

// ChatHandler answers out-of-band guide questions: POST /v1/chat.
// Guide chat reads the session for narrative context but never mutates
// it; a failed provider call degrades to a canned reply instead of an
// error, so the widget always has something to say.
type ChatHandler struct {
	storage  storage.Storage
	narrator services.NarratorService
	logger   *slog.Logger
}

// ChatRequest is a player question for the in-world guide.
type ChatRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id" validate:"required"`
	Message     string    `json:"message" validate:"required,max=512"`
}

// ChatResponse is the guide's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

func NewChatHandler(st storage.Storage, narrator services.NarratorService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		storage:  st,
		narrator: narrator,
		logger:   logger,
	}
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'gamestate_id' and 'message'.")
		return
	}
	if req.GameStateID == uuid.Nil || req.Message == "" {
		respondError(w, h.logger, http.StatusBadRequest, "gamestate_id and message are required")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "message exceeds the allowed length")
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

	reply, err := h.narrator.ChatWithGuide(r.Context(), req.Message, gs.LastNarrative)
	if err != nil {
		h.logger.Warn("Guide chat failed", "error", err, "game_state_id", req.GameStateID.String())
		reply = services.GuideUnavailableReply
	}
	respondJSON(w, h.logger, http.StatusOK, ChatResponse{Reply: reply})
}
