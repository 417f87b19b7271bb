package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

// SaveRecord is the durable snapshot written to the single fixed save
// slot: the full game state plus the segment and image the player was
// looking at when the save happened.
type SaveRecord struct {
	GameState *state.GameState `json:"game_state"`
	Segment   *story.Segment   `json:"segment,omitempty"`
	Image     string           `json:"image,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// SceneImage is a generated scene image pinned to the turn it was
// generated for, so a stale image never overwrites a newer turn's.
type SceneImage struct {
	Turn  int    `json:"turn"`
	Image string `json:"image"`
}

// Storage defines persistence for game sessions, the save slot, and
// scene images.
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error
	// Close closes the storage connection
	Close() error

	// SaveGameState saves a session's gamestate
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	// LoadGameState retrieves a session's gamestate.
	// Returns nil if the gamestate doesn't exist.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	// DeleteGameState removes a session's gamestate
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// WriteSaveSlot overwrites the single save slot
	WriteSaveSlot(ctx context.Context, rec *SaveRecord) error
	// ReadSaveSlot returns the save slot, or nil when no save exists
	ReadSaveSlot(ctx context.Context) (*SaveRecord, error)

	// SaveSceneImage stores the scene image for a session
	SaveSceneImage(ctx context.Context, id uuid.UUID, img *SceneImage) error
	// LoadSceneImage returns the stored scene image, or nil when absent
	LoadSceneImage(ctx context.Context, id uuid.UUID) (*SceneImage, error)
}
