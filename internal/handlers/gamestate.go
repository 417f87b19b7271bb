package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/state"
)

// GameStateHandler handles session lifecycle operations.
//
// Routes:
//
//	POST   /v1/gamestate               - create a session from a character sheet
//	GET    /v1/gamestate/{id}          - read a session
//	DELETE /v1/gamestate/{id}          - delete a session
//	GET    /v1/gamestate/{id}/image    - read the session's scene image
//	POST   /v1/gamestate/{id}/tutorial - mark a one-time hint as seen
type GameStateHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

// CreateGameStateRequest is the character sheet for a new session.
type CreateGameStateRequest struct {
	CharacterName  string `json:"character_name" validate:"required,max=64"`
	CharacterClass string `json:"character_class" validate:"required,max=32"`
	Appearance     string `json:"appearance" validate:"max=512"`
}

type tutorialRequest struct {
	TutorialID string `json:"tutorial_id" validate:"required"`
}

func NewGameStateHandler(st storage.Storage, logger *slog.Logger) *GameStateHandler {
	return &GameStateHandler{
		storage: st,
		logger:  logger,
	}
}

func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/gamestate"), "/")

	if path == "" {
		if r.Method != http.MethodPost {
			respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		h.create(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid game state ID", "id", parts[0], "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "Invalid game state ID format")
		return
	}

	if len(parts) == 2 {
		switch {
		case parts[1] == "image" && r.Method == http.MethodGet:
			h.image(w, r, id)
		case parts[1] == "tutorial" && r.Method == http.MethodPost:
			h.tutorial(w, r, id)
		default:
			respondError(w, h.logger, http.StatusNotFound, "Not found")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

func (h *GameStateHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateGameStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		h.logger.Warn("Invalid create request", "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "character_name and character_class are required")
		return
	}

	gs := state.NewCharacterState(req.CharacterName, req.CharacterClass, req.Appearance)
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save new game state", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to create game state")
		return
	}

	h.logger.Info("Game state created",
		"game_state_id", gs.ID.String(),
		"character", req.CharacterName,
		"class", req.CharacterClass)
	respondJSON(w, h.logger, http.StatusCreated, gs)
}

func (h *GameStateHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load game state", "error", err, "game_state_id", id.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if gs == nil {
		respondError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, gs)
}

func (h *GameStateHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete game state", "error", err, "game_state_id", id.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to delete game state")
		return
	}
	respondJSON(w, h.logger, http.StatusNoContent, nil)
}

func (h *GameStateHandler) image(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	img, err := h.storage.LoadSceneImage(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load scene image", "error", err, "game_state_id", id.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load scene image")
		return
	}
	if img == nil {
		respondError(w, h.logger, http.StatusNotFound, "No scene image for this session")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, img)
}

func (h *GameStateHandler) tutorial(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req tutorialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "tutorial_id is required")
		return
	}

	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if gs == nil {
		respondError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	gs.MarkTutorialSeen(req.TutorialID)
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, gs)
}
