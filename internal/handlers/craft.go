package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/crafting"
	"github.com/infinite-realms/engine/pkg/state"
)

// CraftHandler handles recipe lookup and crafting.
//
// Routes:
//
//	GET  /v1/recipes - the static recipe catalog
//	POST /v1/craft   - attempt a craft against a game state
type CraftHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

type CraftRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id" validate:"required"`
	RecipeID    string    `json:"recipe_id" validate:"required"`
}

// CraftResponse reports the outcome. OK=false means the recipe was
// unaffordable or unknown; state is returned unchanged in that case.
type CraftResponse struct {
	OK        bool             `json:"ok"`
	GameState *state.GameState `json:"game_state"`
}

func NewCraftHandler(st storage.Storage, logger *slog.Logger) *CraftHandler {
	return &CraftHandler{
		storage: st,
		logger:  logger,
	}
}

func (h *CraftHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/v1/recipes" && r.Method == http.MethodGet:
		respondJSON(w, h.logger, http.StatusOK, crafting.Recipes)
	case r.URL.Path == "/v1/craft" && r.Method == http.MethodPost:
		h.craft(w, r)
	default:
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

func (h *CraftHandler) craft(w http.ResponseWriter, r *http.Request) {
	var req CraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "gamestate_id and recipe_id are required")
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

	recipe, ok := crafting.FindRecipe(req.RecipeID)
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "Recipe not found")
		return
	}

	crafted := crafting.Craft(gs, recipe)
	if crafted {
		if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
			h.logger.Error("Failed to save game state after craft", "error", err, "game_state_id", gs.ID.String())
			respondError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
			return
		}
		h.logger.Info("Item crafted", "game_state_id", gs.ID.String(), "recipe_id", recipe.ID)
	}
	respondJSON(w, h.logger, http.StatusOK, CraftResponse{OK: crafted, GameState: gs})
}
