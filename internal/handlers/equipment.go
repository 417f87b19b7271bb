package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/state"
)

// EquipmentHandler handles the player-initiated equipment transitions.
// These bypass the model round-trip entirely: they load, mutate and save
// synchronously.
//
// Routes:
//
//	POST /v1/equip   - equip an inventory item by instance id
//	POST /v1/unequip - empty a slot back into inventory
type EquipmentHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

// EquipRequest identifies the exact item instance to equip. Instance id,
// never name: two items can share a name.
type EquipRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id" validate:"required"`
	ItemID      string    `json:"item_id" validate:"required"`
}

// UnequipRequest identifies the slot to empty.
type UnequipRequest struct {
	GameStateID uuid.UUID       `json:"gamestate_id" validate:"required"`
	Slot        state.EquipSlot `json:"slot" validate:"required,oneof=main_hand armor"`
}

// EquipmentResponse reports whether the transition applied and the
// resulting state. An invalid operation (wrong item type, empty slot) is
// OK=false with unchanged state, never an HTTP error.
type EquipmentResponse struct {
	OK        bool             `json:"ok"`
	GameState *state.GameState `json:"game_state"`
}

func NewEquipmentHandler(st storage.Storage, logger *slog.Logger) *EquipmentHandler {
	return &EquipmentHandler{
		storage: st,
		logger:  logger,
	}
}

func (h *EquipmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	switch r.URL.Path {
	case "/v1/equip":
		h.equip(w, r)
	case "/v1/unequip":
		h.unequip(w, r)
	default:
		respondError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *EquipmentHandler) equip(w http.ResponseWriter, r *http.Request) {
	var req EquipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "gamestate_id and item_id are required")
		return
	}

	gs, ok := h.loadState(w, r, req.GameStateID)
	if !ok {
		return
	}

	applied := gs.Equip(req.ItemID)
	if applied {
		if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
			h.logger.Error("Failed to save game state after equip", "error", err, "game_state_id", gs.ID.String())
			respondError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
			return
		}
	}
	respondJSON(w, h.logger, http.StatusOK, EquipmentResponse{OK: applied, GameState: gs})
}

func (h *EquipmentHandler) unequip(w http.ResponseWriter, r *http.Request) {
	var req UnequipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "gamestate_id and a valid slot are required")
		return
	}

	gs, ok := h.loadState(w, r, req.GameStateID)
	if !ok {
		return
	}

	applied := gs.Unequip(req.Slot)
	if applied {
		if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
			h.logger.Error("Failed to save game state after unequip", "error", err, "game_state_id", gs.ID.String())
			respondError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
			return
		}
	}
	respondJSON(w, h.logger, http.StatusOK, EquipmentResponse{OK: applied, GameState: gs})
}

func (h *EquipmentHandler) loadState(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*state.GameState, bool) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load game state", "error", err, "game_state_id", id.String())
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return nil, false
	}
	if gs == nil {
		respondError(w, h.logger, http.StatusNotFound, "Game state not found")
		return nil, false
	}
	return gs, true
}
