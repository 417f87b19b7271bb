package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func TestGameStateHandler_Create(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewGameStateHandler(mockStorage, testLogger())

	reqBody := `{"character_name":"Ada","character_class":"Rogue","appearance":"cloaked"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/gamestate", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Response body: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", rr.Header().Get("Content-Type"))
	}

	var response state.GameState
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ID == uuid.Nil {
		t.Error("Expected non-nil game state ID")
	}
	if response.CharacterName != "Ada" || response.Health != 90 {
		t.Errorf("Unexpected created state: %+v", response)
	}

	// The session is immediately loadable
	saved, err := mockStorage.LoadGameState(context.Background(), response.ID)
	if err != nil || saved == nil {
		t.Error("Created game state should be persisted")
	}
}

func TestGameStateHandler_CreateValidation(t *testing.T) {
	handler := NewGameStateHandler(storage.NewMockStorage(), testLogger())

	tests := []struct {
		name           string
		requestBody    string
		expectedStatus int
	}{
		{
			name:           "missing character_name",
			requestBody:    `{"character_class":"Rogue"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing character_class",
			requestBody:    `{"character_name":"Ada"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    `{invalid json}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name too long",
			requestBody:    `{"character_name":"` + strings.Repeat("a", 65) + `","character_class":"Rogue"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown class still creates",
			requestBody:    `{"character_name":"Zed","character_class":"Bard"}`,
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/gamestate", strings.NewReader(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Response body: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestGameStateHandler_GetAndDelete(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewGameStateHandler(mockStorage, testLogger())

	gs := state.NewCharacterState("Ada", "Mage", "")
	if err := mockStorage.SaveGameState(context.Background(), gs.ID, gs); err != nil {
		t.Fatalf("Failed to seed game state: %v", err)
	}

	// GET
	req := httptest.NewRequest(http.MethodGet, "/v1/gamestate/"+gs.ID.String(), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var loaded state.GameState
	if err := json.NewDecoder(rr.Body).Decode(&loaded); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if loaded.ID != gs.ID {
		t.Errorf("Expected id %s, got %s", gs.ID, loaded.ID)
	}

	// DELETE
	req = httptest.NewRequest(http.MethodDelete, "/v1/gamestate/"+gs.ID.String(), nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rr.Code)
	}

	// GET after delete is 404
	req = httptest.NewRequest(http.MethodGet, "/v1/gamestate/"+gs.ID.String(), nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", rr.Code)
	}
}

func TestGameStateHandler_InvalidID(t *testing.T) {
	handler := NewGameStateHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/gamestate/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestGameStateHandler_Tutorial(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewGameStateHandler(mockStorage, testLogger())

	gs := state.NewCharacterState("Ada", "Mage", "")
	_ = mockStorage.SaveGameState(context.Background(), gs.ID, gs)

	reqBody := `{"tutorial_id":"combat_intro"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/gamestate/"+gs.ID.String()+"/tutorial", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	saved, _ := mockStorage.LoadGameState(context.Background(), gs.ID)
	if !saved.HasSeenTutorial("combat_intro") {
		t.Error("Tutorial should be marked seen and persisted")
	}
}

func TestGameStateHandler_SceneImage(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewGameStateHandler(mockStorage, testLogger())

	gs := state.NewCharacterState("Ada", "Mage", "")
	_ = mockStorage.SaveGameState(context.Background(), gs.ID, gs)

	// No image yet
	req := httptest.NewRequest(http.MethodGet, "/v1/gamestate/"+gs.ID.String()+"/image", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404 without image, got %d", rr.Code)
	}

	_ = mockStorage.SaveSceneImage(context.Background(), gs.ID, &storage.SceneImage{Turn: 1, Image: "data:image/png;base64,abc"})

	req = httptest.NewRequest(http.MethodGet, "/v1/gamestate/"+gs.ID.String()+"/image", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var img storage.SceneImage
	if err := json.NewDecoder(rr.Body).Decode(&img); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if img.Turn != 1 || img.Image == "" {
		t.Errorf("Unexpected image payload: %+v", img)
	}
}
