package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/crafting"
	"github.com/infinite-realms/engine/pkg/state"
)

func TestCraftHandler_ListRecipes(t *testing.T) {
	handler := NewCraftHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var recipes []crafting.Recipe
	if err := json.NewDecoder(rr.Body).Decode(&recipes); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(recipes) != len(crafting.Recipes) {
		t.Errorf("Expected %d recipes, got %d", len(crafting.Recipes), len(recipes))
	}
}

func TestCraftHandler_Craft(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewCraftHandler(mockStorage, testLogger())

	gs := state.NewGameState()
	gs.Inventory = []state.InventoryItem{
		{ID: "1", Name: "Wood", Type: state.ItemTypeMaterial},
		{ID: "2", Name: "Cloth", Type: state.ItemTypeMaterial},
	}
	_ = mockStorage.SaveGameState(context.Background(), gs.ID, gs)

	reqBody := `{"gamestate_id":"` + gs.ID.String() + `","recipe_id":"torch"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/craft", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
	}
	var resp CraftResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.OK {
		t.Fatal("Expected craft to succeed")
	}
	if resp.GameState.CountItemsByName("Torch") != 1 {
		t.Error("Expected a Torch in inventory")
	}
	if resp.GameState.CountItemsByName("Wood") != 0 || resp.GameState.CountItemsByName("Cloth") != 0 {
		t.Error("Ingredients should be consumed")
	}

	saved, _ := mockStorage.LoadGameState(context.Background(), gs.ID)
	if saved.CountItemsByName("Torch") != 1 {
		t.Error("Craft should be persisted")
	}
}

func TestCraftHandler_UnaffordableCraft(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewCraftHandler(mockStorage, testLogger())

	gs := state.NewGameState()
	gs.Inventory = []state.InventoryItem{{ID: "1", Name: "Wood", Type: state.ItemTypeMaterial}}
	_ = mockStorage.SaveGameState(context.Background(), gs.ID, gs)

	reqBody := `{"gamestate_id":"` + gs.ID.String() + `","recipe_id":"torch"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/craft", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var resp CraftResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.OK {
		t.Fatal("Expected craft to fail")
	}
	// Nothing consumed
	if resp.GameState.CountItemsByName("Wood") != 1 {
		t.Error("Failed craft must leave inventory untouched")
	}
}

func TestCraftHandler_UnknownRecipe(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewCraftHandler(mockStorage, testLogger())

	gs := state.NewGameState()
	_ = mockStorage.SaveGameState(context.Background(), gs.ID, gs)

	reqBody := `{"gamestate_id":"` + gs.ID.String() + `","recipe_id":"philosopher-stone"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/craft", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}
