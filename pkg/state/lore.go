package state

import "github.com/google/uuid"

// LoreCategory classifies an encyclopedia entry.
type LoreCategory string

const (
	LoreCharacter LoreCategory = "Character"
	LoreFaction   LoreCategory = "Faction"
	LoreLocation  LoreCategory = "Location"
	LoreHistory   LoreCategory = "History"
	LoreBestiary  LoreCategory = "Bestiary"
	LoreConcept   LoreCategory = "Concept"
)

// LoreEntry is one record in the append-only discovery ledger. Entries
// are never mutated or removed once added.
type LoreEntry struct {
	ID             string       `json:"id,omitempty"`
	Category       LoreCategory `json:"category"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Icon           string       `json:"icon,omitempty"`
	UnlockedAtTurn int          `json:"unlocked_at_turn,omitempty"`
}

// AddLore appends entries whose name is not already in the ledger
// (case-insensitive). Accepted entries get a fresh id and are stamped
// with the turn the player is about to enter. Returns the number of
// entries accepted, a UI signal only.
func (gs *GameState) AddLore(entries []LoreEntry) int {
	added := 0
	for _, entry := range entries {
		if entry.Name == "" || gs.hasLoreNamed(entry.Name) {
			continue
		}
		entry.ID = uuid.NewString()
		entry.UnlockedAtTurn = gs.TurnCount + 1
		gs.Lore = append(gs.Lore, entry)
		added++
	}
	return added
}

func (gs *GameState) hasLoreNamed(name string) bool {
	for _, entry := range gs.Lore {
		if SameName(entry.Name, name) {
			return true
		}
	}
	return false
}
