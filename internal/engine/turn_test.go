package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/services"
	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func seedSession(t *testing.T, st *storage.MockStorage) *state.GameState {
	t.Helper()
	gs := state.NewCharacterState("Ada", "Rogue", "")
	if err := st.SaveGameState(context.Background(), gs.ID, gs); err != nil {
		t.Fatalf("Failed to seed game state: %v", err)
	}
	return gs
}

func TestTurnProcessor_ProcessAction(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	p := NewTurnProcessor(st, narrator, nil, testLogger())
	gs := seedSession(t, st)

	res, err := p.ProcessAction(context.Background(), gs.ID, "Look around")
	if err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	if res.Fallback {
		t.Error("Expected a real segment, not the fallback")
	}
	if res.Segment.Title != "Mock Scene" {
		t.Errorf("Unexpected segment: %+v", res.Segment)
	}
	if res.GameState.TurnCount != gs.TurnCount+1 {
		t.Errorf("Expected turn %d, got %d", gs.TurnCount+1, res.GameState.TurnCount)
	}

	// The committed state is durable
	saved, err := st.LoadGameState(context.Background(), gs.ID)
	if err != nil || saved == nil {
		t.Fatalf("Failed to reload state: %v", err)
	}
	if saved.TurnCount != res.GameState.TurnCount {
		t.Errorf("Saved turn %d does not match result %d", saved.TurnCount, res.GameState.TurnCount)
	}
	if saved.LastTitle != "Mock Scene" {
		t.Errorf("Expected last title persisted, got %q", saved.LastTitle)
	}
}

func TestTurnProcessor_EmptyAction(t *testing.T) {
	p := NewTurnProcessor(storage.NewMockStorage(), services.NewMockNarrator(), nil, testLogger())
	if _, err := p.ProcessAction(context.Background(), uuid.New(), ""); err == nil {
		t.Error("Expected error for empty action")
	}
}

func TestTurnProcessor_UnknownSession(t *testing.T) {
	p := NewTurnProcessor(storage.NewMockStorage(), services.NewMockNarrator(), nil, testLogger())
	if _, err := p.ProcessAction(context.Background(), uuid.New(), "look"); err == nil {
		t.Error("Expected error for unknown session")
	}
}

// A narrator failure substitutes the fallback segment; the turn still
// commits and the state still advances.
func TestTurnProcessor_FallbackOnNarratorError(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	narrator.GenerateSegmentFunc = func(ctx context.Context, prev, action string, gs *state.GameState) (*story.Segment, error) {
		return nil, errors.New("model unavailable")
	}
	p := NewTurnProcessor(st, narrator, nil, testLogger())
	gs := seedSession(t, st)

	res, err := p.ProcessAction(context.Background(), gs.ID, "Look around")
	if err != nil {
		t.Fatalf("Turn should commit despite narrator failure: %v", err)
	}
	if !res.Fallback {
		t.Error("Expected the fallback flag")
	}
	if res.Segment.Title != "The Void" {
		t.Errorf("Expected the fallback segment, got %q", res.Segment.Title)
	}
	if res.GameState.TurnCount != gs.TurnCount+1 {
		t.Error("Fallback turn should still advance the counter")
	}
	if res.GameState.Health != gs.Health || res.GameState.Gold != gs.Gold {
		t.Error("Fallback must not change vitals")
	}
}

// An invalid segment from the narrator is treated the same as an error.
func TestTurnProcessor_FallbackOnInvalidSegment(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	narrator.GenerateSegmentFunc = func(ctx context.Context, prev, action string, gs *state.GameState) (*story.Segment, error) {
		return &story.Segment{Title: "No Narrative"}, nil
	}
	p := NewTurnProcessor(st, narrator, nil, testLogger())
	gs := seedSession(t, st)

	res, err := p.ProcessAction(context.Background(), gs.ID, "Look around")
	if err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	if !res.Fallback || res.Segment.Title != "The Void" {
		t.Errorf("Expected fallback for invalid segment, got %+v", res.Segment)
	}
}

// Segments must carry exactly three choices; a short list is malformed
// output, not a smaller menu.
func TestTurnProcessor_FallbackOnWrongChoiceCount(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	narrator.GenerateSegmentFunc = func(ctx context.Context, prev, action string, gs *state.GameState) (*story.Segment, error) {
		return &story.Segment{
			Title:       "Two Doors",
			Narrative:   "Two doors face you.",
			Choices:     []string{"Left door", "Right door"},
			ImagePrompt: "two doors in a stone wall",
		}, nil
	}
	p := NewTurnProcessor(st, narrator, nil, testLogger())
	gs := seedSession(t, st)

	res, err := p.ProcessAction(context.Background(), gs.ID, "Look around")
	if err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	if !res.Fallback || res.Segment.Title != "The Void" {
		t.Errorf("Expected fallback for a two-choice segment, got %+v", res.Segment)
	}
}

// Only one turn per session may be in flight; a second concurrent action
// is rejected, not queued.
func TestTurnProcessor_BusyGuard(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()

	started := make(chan struct{})
	release := make(chan struct{})
	narrator.GenerateSegmentFunc = func(ctx context.Context, prev, action string, gs *state.GameState) (*story.Segment, error) {
		close(started)
		<-release
		return story.FallbackSegment(), nil
	}

	p := NewTurnProcessor(st, narrator, nil, testLogger())
	gs := seedSession(t, st)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = p.ProcessAction(context.Background(), gs.ID, "slow action")
	}()

	<-started
	_, err := p.ProcessAction(context.Background(), gs.ID, "second action")
	if !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("Expected ErrTurnInFlight, got %v", err)
	}
	close(release)
	wg.Wait()

	// The guard clears once the first turn commits
	narrator.GenerateSegmentFunc = nil
	if _, err := p.ProcessAction(context.Background(), gs.ID, "third action"); err != nil {
		t.Errorf("Expected the session to be free again: %v", err)
	}
}

// Combat resolution autosaves the fixed slot.
func TestTurnProcessor_AutosaveOnCombatEnd(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	narrator.GenerateSegmentFunc = func(ctx context.Context, prev, action string, gs *state.GameState) (*story.Segment, error) {
		return &story.Segment{
			Title:        "Victory",
			Narrative:    "The wolf collapses.",
			Choices:      []string{"Continue", "Rest", "Look around"},
			ImagePrompt:  "a fallen wolf",
			CombatUpdate: &state.CombatUpdate{NewEnemyHealth: 0, Status: state.CombatVictory},
		}, nil
	}
	p := NewTurnProcessor(st, narrator, nil, testLogger())

	gs := state.NewCharacterState("Ada", "Rogue", "")
	gs.StartCombat("Shadow Wolf", 30, "")
	if err := st.SaveGameState(context.Background(), gs.ID, gs); err != nil {
		t.Fatalf("Failed to seed game state: %v", err)
	}

	res, err := p.ProcessAction(context.Background(), gs.ID, "finish it")
	if err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	if !res.CombatEnded {
		t.Fatal("Expected combat to end")
	}
	if st.SaveSlotWrites != 1 {
		t.Errorf("Expected 1 autosave, got %d", st.SaveSlotWrites)
	}

	rec, _ := st.ReadSaveSlot(context.Background())
	if rec == nil || rec.GameState.Combat != nil {
		t.Error("Autosaved state should have combat cleared")
	}
}

// A slot write failure is logged, never surfaced: the turn has already
// committed.
func TestTurnProcessor_AutosaveFailureDoesNotFailTurn(t *testing.T) {
	st := storage.NewMockStorage()
	st.WriteSaveSlotFunc = func(ctx context.Context, rec *storage.SaveRecord) error {
		return errors.New("disk full")
	}
	narrator := services.NewMockNarrator()
	narrator.GenerateSegmentFunc = func(ctx context.Context, prev, action string, gs *state.GameState) (*story.Segment, error) {
		return &story.Segment{
			Title:        "Victory",
			Narrative:    "Done.",
			Choices:      []string{"Continue", "Rest", "Look around"},
			ImagePrompt:  "a battlefield",
			CombatUpdate: &state.CombatUpdate{NewEnemyHealth: 0, Status: state.CombatVictory},
		}, nil
	}
	p := NewTurnProcessor(st, narrator, nil, testLogger())

	gs := state.NewCharacterState("Ada", "Rogue", "")
	gs.StartCombat("Shadow Wolf", 30, "")
	_ = st.SaveGameState(context.Background(), gs.ID, gs)

	if _, err := p.ProcessAction(context.Background(), gs.ID, "finish it"); err != nil {
		t.Errorf("Turn should commit despite autosave failure: %v", err)
	}
}

// The history line sent to the narrator pairs the previous scene title
// with the new action.
func TestTurnProcessor_HistoryContext(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	p := NewTurnProcessor(st, narrator, nil, testLogger())
	gs := seedSession(t, st)

	if _, err := p.ProcessAction(context.Background(), gs.ID, "first action"); err != nil {
		t.Fatalf("First turn failed: %v", err)
	}
	if _, err := p.ProcessAction(context.Background(), gs.ID, "second action"); err != nil {
		t.Fatalf("Second turn failed: %v", err)
	}

	saved, _ := st.LoadGameState(context.Background(), gs.ID)
	want := []string{"Action: first action", "Scene: Mock Scene", "Action: second action"}
	if len(saved.History) != len(want) {
		t.Fatalf("Expected %d history lines, got %v", len(want), saved.History)
	}
	for i, line := range want {
		if saved.History[i] != line {
			t.Errorf("History[%d] = %q, expected %q", i, saved.History[i], line)
		}
	}
}

func TestTurnProcessor_ImageAttachment(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	images := services.NewMockImageService()
	images.GenerateSceneFunc = func(ctx context.Context, prompt string) (string, error) {
		return "data:image/png;base64,abc", nil
	}
	p := NewTurnProcessor(st, narrator, images, testLogger())
	gs := seedSession(t, st)

	res, err := p.ProcessAction(context.Background(), gs.ID, "Look around")
	if err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	p.WaitForImages()

	img, err := st.LoadSceneImage(context.Background(), gs.ID)
	if err != nil || img == nil {
		t.Fatalf("Expected a stored scene image, got %v err=%v", img, err)
	}
	if img.Turn != res.GameState.TurnCount {
		t.Errorf("Image pinned to turn %d, expected %d", img.Turn, res.GameState.TurnCount)
	}
}

// An image that lands after the session has advanced is dropped: a stale
// image never overwrites a newer turn.
func TestTurnProcessor_StaleImageDropped(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	images := services.NewMockImageService()

	p := NewTurnProcessor(st, narrator, images, testLogger())
	gs := seedSession(t, st)

	images.GenerateSceneFunc = func(ctx context.Context, prompt string) (string, error) {
		// Advance the session before the image lands
		latest, err := st.LoadGameState(ctx, gs.ID)
		if err != nil {
			return "", err
		}
		latest.TurnCount++
		if err := st.SaveGameState(ctx, gs.ID, latest); err != nil {
			return "", err
		}
		return "data:image/png;base64,stale", nil
	}

	if _, err := p.ProcessAction(context.Background(), gs.ID, "Look around"); err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	p.WaitForImages()

	img, err := st.LoadSceneImage(context.Background(), gs.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if img != nil {
		t.Errorf("Stale image should have been dropped, got %+v", img)
	}
}

// Failed image generation is invisible to the turn: nothing stored,
// nothing surfaced.
func TestTurnProcessor_ImageFailureIgnored(t *testing.T) {
	st := storage.NewMockStorage()
	narrator := services.NewMockNarrator()
	images := services.NewMockImageService()
	images.GenerateSceneFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", fmt.Errorf("image backend down")
	}
	p := NewTurnProcessor(st, narrator, images, testLogger())
	gs := seedSession(t, st)

	if _, err := p.ProcessAction(context.Background(), gs.ID, "Look around"); err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	p.WaitForImages()

	img, _ := st.LoadSceneImage(context.Background(), gs.ID)
	if img != nil {
		t.Error("No image should be stored on failure")
	}
}
