package state

import "fmt"

// CombatStatus is the encounter status reported by a combat-update patch.
type CombatStatus string

const (
	CombatOngoing CombatStatus = "ongoing"
	CombatVictory CombatStatus = "victory"
	CombatDefeat  CombatStatus = "defeat"
	CombatFled    CombatStatus = "fled"
)

// CombatLogType classifies a combat log line.
type CombatLogType string

const (
	CombatLogPlayer CombatLogType = "player"
	CombatLogEnemy  CombatLogType = "enemy"
	CombatLogInfo   CombatLogType = "info"
	CombatLogDamage CombatLogType = "damage"
)

// CombatLogEntry is one line in the encounter log.
type CombatLogEntry struct {
	Turn int           `json:"turn"`
	Text string        `json:"text"`
	Type CombatLogType `json:"type"`
}

// CombatState is an active encounter against a single named enemy. Nil on
// the game state means no encounter.
type CombatState struct {
	IsActive    bool             `json:"is_active"`
	EnemyName   string           `json:"enemy_name"`
	EnemyHealth int              `json:"enemy_health"`
	MaxHealth   int              `json:"max_health"`
	Description string           `json:"description,omitempty"`
	LastAction  string           `json:"last_action,omitempty"`
	Log         []CombatLogEntry `json:"log,omitempty"`
}

// CombatUpdate is the combat portion of a patch while an encounter is
// active.
type CombatUpdate struct {
	NewEnemyHealth int          `json:"new_enemy_health"`
	Status         CombatStatus `json:"status"`
	EnemyAction    string       `json:"enemy_action,omitempty"`
}

// StartCombat begins an encounter. A start arriving while a fight is
// already active overwrites the current encounter unconditionally. The
// log is seeded with an info entry stamped with the turn the player is
// about to enter.
func (gs *GameState) StartCombat(enemyName string, health int, description string) {
	if health < 1 {
		health = 1
	}
	gs.Combat = &CombatState{
		IsActive:    true,
		EnemyName:   enemyName,
		EnemyHealth: health,
		MaxHealth:   health,
		Description: description,
		LastAction:  "Enters the fray!",
		Log: []CombatLogEntry{{
			Turn: gs.TurnCount + 1,
			Text: fmt.Sprintf("Encounter started vs %s", enemyName),
			Type: CombatLogInfo,
		}},
	}
}

// UpdateCombat applies a combat-update patch to the active encounter.
// healthChange is the turn's declared delta to player health; a negative
// value is logged as damage taken. The reported enemy health is clamped
// to [0, maxHealth] at ingestion, so out-of-range patch values never
// reach stored state. Any status other than "ongoing" discards the
// encounter entirely; the returned flag reports that resolution so the
// orchestrator can autosave. No-op when no encounter is active.
func (gs *GameState) UpdateCombat(action string, upd CombatUpdate, healthChange int) (ended bool) {
	c := gs.Combat
	if c == nil || !c.IsActive {
		return false
	}
	turn := gs.TurnCount + 1

	newHealth := upd.NewEnemyHealth
	if newHealth < 0 {
		newHealth = 0
	}
	if newHealth > c.MaxHealth {
		newHealth = c.MaxHealth
	}

	c.Log = append(c.Log, CombatLogEntry{Turn: turn, Text: fmt.Sprintf("> %s", action), Type: CombatLogPlayer})
	if dmg := c.EnemyHealth - newHealth; dmg > 0 {
		c.Log = append(c.Log, CombatLogEntry{Turn: turn, Text: fmt.Sprintf("%s took %d damage.", c.EnemyName, dmg), Type: CombatLogDamage})
	}
	if upd.EnemyAction != "" {
		c.Log = append(c.Log, CombatLogEntry{Turn: turn, Text: upd.EnemyAction, Type: CombatLogEnemy})
	}
	if healthChange < 0 {
		c.Log = append(c.Log, CombatLogEntry{Turn: turn, Text: fmt.Sprintf("You took %d damage.", -healthChange), Type: CombatLogDamage})
	}

	if upd.Status != CombatOngoing {
		gs.Combat = nil
		return true
	}

	c.EnemyHealth = newHealth
	if upd.EnemyAction != "" {
		c.LastAction = upd.EnemyAction
	} else {
		c.LastAction = "Attacks!"
	}
	return false
}
