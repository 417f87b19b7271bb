package state

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxHealth is the player health ceiling. Health is always clamped
	// to [0, MaxHealth] when a change is applied.
	MaxHealth = 100

	// HistoryLimit is the number of history lines retained for model context.
	HistoryLimit = 10
)

// GameState is the canonical cumulative state of one adventure session.
// It is the single source of truth: reconcilers mutate it only through
// the transition methods in this package.
type GameState struct {
	ID             uuid.UUID       `json:"id"`
	CharacterName  string          `json:"character_name"`
	CharacterClass string          `json:"character_class"`
	Appearance     string          `json:"appearance"`
	Health         int             `json:"health"`
	Gold           int             `json:"gold"`
	TurnCount      int             `json:"turn_count"`
	CurrentQuest   string          `json:"current_quest,omitempty"`
	History        []string        `json:"history,omitempty"`
	Inventory      []InventoryItem `json:"inventory,omitempty"`
	Equipment      Equipment       `json:"equipment"`
	Locations      []WorldLocation `json:"locations,omitempty"`
	CurrentLocID   string          `json:"current_location_id,omitempty"`
	Combat         *CombatState    `json:"combat,omitempty"`
	Lore           []LoreEntry     `json:"lore,omitempty"`
	ActiveEffects  []StatusEffect  `json:"active_effects,omitempty"`
	SeenTutorials  []string        `json:"seen_tutorials,omitempty"`

	// LastTitle, LastNarrative and LastChoices carry the previous
	// segment so the next narrator call has continuity and the save
	// slot can snapshot what the player was reading.
	LastTitle     string   `json:"last_title,omitempty"`
	LastNarrative string   `json:"last_narrative,omitempty"`
	LastChoices   []string `json:"last_choices,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewGameState creates an empty session with default vitals.
func NewGameState() *GameState {
	return &GameState{
		ID:        uuid.New(),
		Health:    MaxHealth,
		Gold:      10,
		TurnCount: 1,
		Inventory: make([]InventoryItem, 0),
		CreatedAt: time.Now(),
	}
}

// Normalize defaults fields that older saves may not carry. Saves written
// before lore, equipment, status effects or tutorials existed must load
// as empty collections, never as an error.
func (gs *GameState) Normalize() {
	if gs.Inventory == nil {
		gs.Inventory = make([]InventoryItem, 0)
	}
	if gs.Lore == nil {
		gs.Lore = make([]LoreEntry, 0)
	}
	if gs.ActiveEffects == nil {
		gs.ActiveEffects = make([]StatusEffect, 0)
	}
	if gs.SeenTutorials == nil {
		gs.SeenTutorials = make([]string, 0)
	}
	if gs.TurnCount < 1 {
		gs.TurnCount = 1
	}
}

// AppendHistory adds lines to the rolling history buffer, retaining only
// the most recent HistoryLimit entries.
func (gs *GameState) AppendHistory(lines ...string) {
	gs.History = append(gs.History, lines...)
	if len(gs.History) > HistoryLimit {
		gs.History = gs.History[len(gs.History)-HistoryLimit:]
	}
}

// ApplyHealthChange adjusts player health, clamped to [0, MaxHealth].
func (gs *GameState) ApplyHealthChange(delta int) {
	gs.Health += delta
	if gs.Health > MaxHealth {
		gs.Health = MaxHealth
	}
	if gs.Health < 0 {
		gs.Health = 0
	}
}

// ApplyGoldChange adjusts gold, floored at zero.
func (gs *GameState) ApplyGoldChange(delta int) {
	gs.Gold += delta
	if gs.Gold < 0 {
		gs.Gold = 0
	}
}

// HasSeenTutorial reports whether a one-time hint was already shown.
func (gs *GameState) HasSeenTutorial(id string) bool {
	for _, seen := range gs.SeenTutorials {
		if seen == id {
			return true
		}
	}
	return false
}

// MarkTutorialSeen records a one-time hint id. Idempotent.
func (gs *GameState) MarkTutorialSeen(id string) {
	if gs.HasSeenTutorial(id) {
		return
	}
	gs.SeenTutorials = append(gs.SeenTutorials, id)
}

// DeepCopy returns an independent copy of the game state, suitable for
// handing to a background goroutine.
func (gs *GameState) DeepCopy() (*GameState, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, err
	}
	var cp GameState
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
