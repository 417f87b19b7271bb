package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/pkg/state"
)

// MockStorage is an in-memory Storage for tests. Game states are deep
// copied on save and load so tests never share mutable references with
// the code under test.
type MockStorage struct {
	mu         sync.Mutex
	gameStates map[uuid.UUID]*state.GameState
	saveSlot   *SaveRecord
	images     map[uuid.UUID]*SceneImage

	// Optional overrides for failure injection
	SaveGameStateFunc func(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameStateFunc func(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	WriteSaveSlotFunc func(ctx context.Context, rec *SaveRecord) error

	// Call counters
	SaveSlotWrites int
}

var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates an empty in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gameStates: make(map[uuid.UUID]*state.GameState),
		images:     make(map[uuid.UUID]*SceneImage),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error { return nil }
func (m *MockStorage) Close() error                   { return nil }

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if m.SaveGameStateFunc != nil {
		return m.SaveGameStateFunc(ctx, id, gs)
	}
	cp, err := gs.DeepCopy()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameStates[id] = cp
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	if m.LoadGameStateFunc != nil {
		return m.LoadGameStateFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	gs, ok := m.gameStates[id]
	if !ok {
		return nil, nil
	}
	cp, err := gs.DeepCopy()
	if err != nil {
		return nil, err
	}
	cp.Normalize()
	return cp, nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gameStates, id)
	return nil
}

func (m *MockStorage) WriteSaveSlot(ctx context.Context, rec *SaveRecord) error {
	if m.WriteSaveSlotFunc != nil {
		return m.WriteSaveSlotFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveSlot = rec
	m.SaveSlotWrites++
	return nil
}

func (m *MockStorage) ReadSaveSlot(ctx context.Context) (*SaveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveSlot, nil
}

func (m *MockStorage) SaveSceneImage(ctx context.Context, id uuid.UUID, img *SceneImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[id] = img
	return nil
}

func (m *MockStorage) LoadSceneImage(ctx context.Context, id uuid.UUID) (*SceneImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.images[id], nil
}
