package story

import (
	"log/slog"

	"github.com/infinite-realms/engine/pkg/state"
)

// Result summarizes side effects of one reconciliation pass that the
// orchestrator and UI care about but that are not state-bearing.
type Result struct {
	LoreAdded        int
	ItemsAdded       int
	CombatStarted    bool
	CombatEnded      bool
	SoundEnvironment string
}

// Worker applies one segment to one game state. It encapsulates the
// reconciliation order; callers construct it per turn and call Apply
// exactly once.
type Worker struct {
	gs     *state.GameState
	seg    *Segment
	action string
	logger *slog.Logger
}

// NewWorker creates a worker for applying a segment produced by the
// given player action.
func NewWorker(gs *state.GameState, seg *Segment, action string, logger *slog.Logger) *Worker {
	return &Worker{gs: gs, seg: seg, action: action, logger: logger}
}

// Apply merges the segment into the game state. The order is fixed:
// inventory, quest, location, lore, status effects, combat, then vitals
// and the turn counter. Status effects decay before cures and cures
// before new applications; combat log entries are stamped with the turn
// the player is about to enter. A nil segment advances nothing.
func (w *Worker) Apply() Result {
	var res Result
	if w.seg == nil {
		return res
	}
	gs, seg := w.gs, w.seg

	res.ItemsAdded = gs.AddInventoryItems(seg.NewInventoryItems)
	gs.RemoveInventoryByName(seg.RemovedInventoryItems)

	if seg.UpdatedQuest != "" {
		gs.CurrentQuest = seg.UpdatedQuest
	}

	w.applyLocation()
	res.LoreAdded = gs.AddLore(seg.NewLore)

	gs.TickEffects()
	gs.CureEffects(seg.RemovedStatusEffects)
	gs.ApplyEffects(seg.NewStatusEffects)

	res.CombatStarted, res.CombatEnded = w.applyCombat()
	res.SoundEnvironment = seg.SoundEnvironment
	if res.CombatStarted && res.SoundEnvironment == "" {
		res.SoundEnvironment = SoundBattle
	}

	gs.ApplyHealthChange(seg.HealthChange)
	gs.ApplyGoldChange(seg.GoldChange)
	gs.TurnCount++

	gs.LastTitle = seg.Title
	gs.LastNarrative = seg.Narrative
	gs.LastChoices = seg.Choices
	return res
}

// applyLocation handles the dual-path location change: an explicit
// new_location patch takes precedence; otherwise a literal
// "Travel to <name>" action resolves against already known places.
func (w *Worker) applyLocation() {
	gs, seg := w.gs, w.seg
	if seg.NewLocation != nil && seg.NewLocation.Name != "" {
		gs.DiscoverLocation(seg.NewLocation.Name, seg.NewLocation.Description, seg.NewLocation.X, seg.NewLocation.Y)
		return
	}
	if target, ok := state.ParseTravelAction(w.action); ok {
		if !gs.TravelTo(target) && w.logger != nil {
			w.logger.Warn("travel to unknown location ignored",
				"target", target,
				"game_state_id", gs.ID.String())
		}
	}
}

func (w *Worker) applyCombat() (started, ended bool) {
	gs, seg := w.gs, w.seg
	if seg.StartCombat != nil {
		if gs.Combat != nil && gs.Combat.IsActive && w.logger != nil {
			w.logger.Warn("combat start overwrites active encounter",
				"previous_enemy", gs.Combat.EnemyName,
				"new_enemy", seg.StartCombat.EnemyName,
				"game_state_id", gs.ID.String())
		}
		gs.StartCombat(seg.StartCombat.EnemyName, seg.StartCombat.Health, seg.StartCombat.Description)
		return true, false
	}
	if seg.CombatUpdate != nil {
		ended = gs.UpdateCombat(w.action, *seg.CombatUpdate, seg.HealthChange)
		return false, ended
	}
	return false, false
}
