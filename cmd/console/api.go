package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/pkg/crafting"
	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// CreateGameStateRequest matches the API request structure
type CreateGameStateRequest struct {
	CharacterName  string `json:"character_name"`
	CharacterClass string `json:"character_class"`
	Appearance     string `json:"appearance,omitempty"`
}

// ActionRequest matches the API request structure
type ActionRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	Action      string    `json:"action"`
}

// ActionResponse matches the API response structure
type ActionResponse struct {
	GameState        *state.GameState `json:"game_state"`
	Segment          *story.Segment   `json:"segment"`
	Fallback         bool             `json:"fallback,omitempty"`
	LoreAdded        int              `json:"lore_added,omitempty"`
	CombatStarted    bool             `json:"combat_started,omitempty"`
	CombatEnded      bool             `json:"combat_ended,omitempty"`
	SoundEnvironment string           `json:"sound_environment,omitempty"`
}

type EquipRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	ItemID      string    `json:"item_id"`
}

type UnequipRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	Slot        string    `json:"slot"`
}

type CraftRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	RecipeID    string    `json:"recipe_id"`
}

type MutationResponse struct {
	OK        bool             `json:"ok"`
	GameState *state.GameState `json:"game_state"`
}

type ChatRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	Message     string    `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type SaveRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
}

type SaveRecord struct {
	GameState *state.GameState `json:"game_state"`
	Segment   *story.Segment   `json:"segment,omitempty"`
	Image     string           `json:"image,omitempty"`
}

type LoadResponse struct {
	Record *SaveRecord `json:"record"`
}

func postJSON(client *http.Client, url string, req any, out any) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func createGameState(client *http.Client, baseURL, name, class, appearance string) (*state.GameState, error) {
	var gs state.GameState
	req := CreateGameStateRequest{
		CharacterName:  name,
		CharacterClass: class,
		Appearance:     appearance,
	}
	if err := postJSON(client, baseURL+"/v1/gamestate", req, &gs); err != nil {
		return nil, fmt.Errorf("failed to create game state: %w", err)
	}
	return &gs, nil
}

func getGameState(client *http.Client, baseURL string, gameStateID uuid.UUID) (*state.GameState, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/gamestate/%s", baseURL, gameStateID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get game state: %s", errorResp.Error)
	}

	var gameState state.GameState
	if err := json.Unmarshal(body, &gameState); err != nil {
		return nil, fmt.Errorf("failed to parse game state response: %w", err)
	}
	return &gameState, nil
}

func sendAction(client *http.Client, baseURL string, gameStateID uuid.UUID, action string) (*ActionResponse, error) {
	var out ActionResponse
	req := ActionRequest{GameStateID: gameStateID, Action: action}
	if err := postJSON(client, baseURL+"/v1/action", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func equipItem(client *http.Client, baseURL string, gameStateID uuid.UUID, itemID string) (*MutationResponse, error) {
	var out MutationResponse
	req := EquipRequest{GameStateID: gameStateID, ItemID: itemID}
	if err := postJSON(client, baseURL+"/v1/equip", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func unequipSlot(client *http.Client, baseURL string, gameStateID uuid.UUID, slot string) (*MutationResponse, error) {
	var out MutationResponse
	req := UnequipRequest{GameStateID: gameStateID, Slot: slot}
	if err := postJSON(client, baseURL+"/v1/unequip", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func craftItem(client *http.Client, baseURL string, gameStateID uuid.UUID, recipeID string) (*MutationResponse, error) {
	var out MutationResponse
	req := CraftRequest{GameStateID: gameStateID, RecipeID: recipeID}
	if err := postJSON(client, baseURL+"/v1/craft", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func listRecipes(client *http.Client, baseURL string) ([]crafting.Recipe, error) {
	resp, err := client.Get(baseURL + "/v1/recipes")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var recipes []crafting.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}
	return recipes, nil
}

func askGuide(client *http.Client, baseURL string, gameStateID uuid.UUID, message string) (string, error) {
	var out ChatResponse
	req := ChatRequest{GameStateID: gameStateID, Message: message}
	if err := postJSON(client, baseURL+"/v1/chat", req, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func saveGame(client *http.Client, baseURL string, gameStateID uuid.UUID) error {
	return postJSON(client, baseURL+"/v1/save", SaveRequest{GameStateID: gameStateID}, nil)
}

func loadGame(client *http.Client, baseURL string) (*state.GameState, *story.Segment, error) {
	var out LoadResponse
	if err := postJSON(client, baseURL+"/v1/load", struct{}{}, &out); err != nil {
		return nil, nil, err
	}
	if out.Record == nil || out.Record.GameState == nil {
		return nil, nil, fmt.Errorf("no save exists")
	}
	return out.Record.GameState, out.Record.Segment, nil
}
