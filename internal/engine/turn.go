// Package engine sequences one player turn: busy guard, narrative call,
// patch reconciliation, persistence, and the detached image generation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/internal/services"
	"github.com/infinite-realms/engine/internal/storage"
	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

// ErrTurnInFlight is returned when an action arrives while the session's
// previous turn has not committed yet. At most one turn is in flight per
// session; callers surface this as "busy", never queue.
var ErrTurnInFlight = errors.New("a turn is already in progress for this session")

// ErrSessionNotFound is returned when the action targets an id with no
// stored game state.
var ErrSessionNotFound = errors.New("game state not found")

const (
	narratorTimeout = 60 * time.Second
	imageTimeout    = 90 * time.Second
)

// TurnResult is what one committed turn hands back to the transport
// layer: the new state, the segment the player should read, and the
// non-state-bearing reconciliation signals.
type TurnResult struct {
	GameState        *state.GameState
	Segment          *story.Segment
	Fallback         bool
	LoreAdded        int
	CombatStarted    bool
	CombatEnded      bool
	SoundEnvironment string
}

// TurnProcessor is the turn orchestrator. It owns the per-session busy
// guard and is safe for concurrent use by the HTTP handlers.
type TurnProcessor struct {
	storage  storage.Storage
	narrator services.NarratorService
	images   services.ImageService
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}

	// imageWG lets tests wait for detached image attachments.
	imageWG sync.WaitGroup
}

// NewTurnProcessor creates a turn processor. images may be nil, in which
// case no scene images are generated.
func NewTurnProcessor(st storage.Storage, narrator services.NarratorService, images services.ImageService, logger *slog.Logger) *TurnProcessor {
	return &TurnProcessor{
		storage:  st,
		narrator: narrator,
		images:   images,
		logger:   logger,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

// ProcessAction runs one full turn for a session. The turn is committed
// when this returns: narrative and state merge are synchronous, image
// attachment is detached and eventually consistent. A narrator failure
// substitutes the deterministic fallback segment; it never aborts the
// turn or reaches stored state as an error.
func (p *TurnProcessor) ProcessAction(ctx context.Context, id uuid.UUID, action string) (*TurnResult, error) {
	if action == "" {
		return nil, fmt.Errorf("action cannot be empty")
	}
	if !p.begin(id) {
		return nil, ErrTurnInFlight
	}
	defer p.end(id)

	gs, err := p.storage.LoadGameState(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	if gs == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id.String())
	}

	// Update the rolling context buffer before the model call so the
	// narrator sees the action it is responding to.
	if gs.LastTitle != "" {
		gs.AppendHistory(fmt.Sprintf("Scene: %s", gs.LastTitle), fmt.Sprintf("Action: %s", action))
	} else {
		gs.AppendHistory(fmt.Sprintf("Action: %s", action))
	}

	seg, fallback := p.generateSegment(ctx, gs, action)

	res := story.NewWorker(gs, seg, action, p.logger).Apply()

	if err := p.storage.SaveGameState(ctx, gs.ID, gs); err != nil {
		return nil, fmt.Errorf("failed to save game state: %w", err)
	}

	// Combat resolution triggers an autosave of the fixed slot. A slot
	// write failure is logged, not surfaced; the in-memory turn already
	// committed.
	if res.CombatEnded {
		rec := &storage.SaveRecord{GameState: gs, Segment: seg}
		if err := p.storage.WriteSaveSlot(ctx, rec); err != nil {
			p.logger.Error("Autosave after combat failed", "error", err, "game_state_id", gs.ID.String())
		} else {
			p.logger.Info("Autosaved after combat resolution", "game_state_id", gs.ID.String())
		}
	}

	if p.images != nil && seg.ImagePrompt != "" {
		p.spawnImageAttachment(gs.ID, gs.TurnCount, seg.ImagePrompt)
	}

	return &TurnResult{
		GameState:        gs,
		Segment:          seg,
		Fallback:         fallback,
		LoreAdded:        res.LoreAdded,
		CombatStarted:    res.CombatStarted,
		CombatEnded:      res.CombatEnded,
		SoundEnvironment: res.SoundEnvironment,
	}, nil
}

// generateSegment calls the narrator and substitutes the fallback on any
// failure, including a segment that fails boundary validation.
func (p *TurnProcessor) generateSegment(ctx context.Context, gs *state.GameState, action string) (*story.Segment, bool) {
	genCtx, cancel := context.WithTimeout(ctx, narratorTimeout)
	defer cancel()

	seg, err := p.narrator.GenerateSegment(genCtx, gs.LastNarrative, action, gs)
	if err != nil {
		p.logger.Error("Narrative generation failed, using fallback", "error", err, "game_state_id", gs.ID.String())
		return story.FallbackSegment(), true
	}
	if err := seg.Validate(); err != nil {
		p.logger.Warn("Narrator returned invalid segment, using fallback", "error", err, "game_state_id", gs.ID.String())
		return story.FallbackSegment(), true
	}
	seg.Sanitize()
	return seg, false
}

// spawnImageAttachment fires the scene image generation without blocking
// the turn. The result is applied through a turn-number guard: if the
// session has advanced past the turn the image was generated for, the
// stale image is dropped instead of overwriting a newer scene.
func (p *TurnProcessor) spawnImageAttachment(id uuid.UUID, turn int, prompt string) {
	p.imageWG.Add(1)
	go func() {
		defer p.imageWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
		defer cancel()

		img, err := p.images.GenerateScene(ctx, prompt)
		if err != nil {
			p.logger.Warn("Scene image generation failed", "error", err, "game_state_id", id.String())
			return
		}
		if img == "" {
			return
		}

		latest, err := p.storage.LoadGameState(ctx, id)
		if err != nil || latest == nil {
			p.logger.Warn("Could not load game state for image attachment", "error", err, "game_state_id", id.String())
			return
		}
		if latest.TurnCount != turn {
			p.logger.Debug("Dropping stale scene image",
				"generated_for_turn", turn,
				"current_turn", latest.TurnCount,
				"game_state_id", id.String())
			return
		}

		if err := p.storage.SaveSceneImage(ctx, id, &storage.SceneImage{Turn: turn, Image: img}); err != nil {
			p.logger.Warn("Failed to store scene image", "error", err, "game_state_id", id.String())
		}
	}()
}

// WaitForImages blocks until all detached image attachments finish.
// Intended for tests and shutdown.
func (p *TurnProcessor) WaitForImages() {
	p.imageWG.Wait()
}

func (p *TurnProcessor) begin(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[id]; busy {
		return false
	}
	p.inFlight[id] = struct{}{}
	return true
}

func (p *TurnProcessor) end(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, id)
}
