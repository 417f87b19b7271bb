package state

import "github.com/google/uuid"

// EffectType marks a status effect as helpful or harmful.
type EffectType string

const (
	EffectBuff   EffectType = "buff"
	EffectDebuff EffectType = "debuff"
)

// StatusEffect is a timed condition on the player. Name is the identity:
// duplicate-name applications refresh the existing effect instead of
// stacking.
type StatusEffect struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Duration    int        `json:"duration"`
	Type        EffectType `json:"type"`
}

// TickEffects decrements every effect's remaining duration by one and
// drops any that reach zero or below. The effect already ticked during
// the turn that just resolved, so this runs before cures and new
// applications: a freshly applied effect is never decayed in the turn it
// was granted.
func (gs *GameState) TickEffects() {
	kept := gs.ActiveEffects[:0]
	for _, e := range gs.ActiveEffects {
		e.Duration--
		if e.Duration > 0 {
			kept = append(kept, e)
		}
	}
	gs.ActiveEffects = kept
}

// CureEffects drops effects whose name matches any of the given names
// (case-insensitive), regardless of remaining duration. Returns the
// number removed.
func (gs *GameState) CureEffects(names []string) int {
	if len(names) == 0 {
		return 0
	}
	toRemove := make(map[string]struct{}, len(names))
	for _, name := range names {
		toRemove[FoldName(name)] = struct{}{}
	}
	removed := 0
	kept := gs.ActiveEffects[:0]
	for _, e := range gs.ActiveEffects {
		if _, ok := toRemove[FoldName(e.Name)]; ok {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	gs.ActiveEffects = kept
	return removed
}

// ApplyEffects adds incoming effects. An effect whose name already exists
// is replaced in place, refreshing its duration and description while
// keeping its id; otherwise the effect is appended with a fresh id.
func (gs *GameState) ApplyEffects(effects []StatusEffect) {
	for _, incoming := range effects {
		if incoming.Name == "" {
			continue
		}
		replaced := false
		for i, existing := range gs.ActiveEffects {
			if SameName(existing.Name, incoming.Name) {
				if existing.ID != "" {
					incoming.ID = existing.ID
				} else {
					incoming.ID = uuid.NewString()
				}
				gs.ActiveEffects[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			incoming.ID = uuid.NewString()
			gs.ActiveEffects = append(gs.ActiveEffects, incoming)
		}
	}
}
