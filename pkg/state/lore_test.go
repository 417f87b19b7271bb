package state

import "testing"

func TestGameState_AddLore(t *testing.T) {
	gs := NewGameState()
	gs.TurnCount = 4

	added := gs.AddLore([]LoreEntry{
		{Category: LoreCharacter, Name: "Old Witch", Description: "Keeper of the marsh."},
		{Category: LoreFaction, Name: "Ember Guard"},
	})
	if added != 2 {
		t.Fatalf("Expected 2 added, got %d", added)
	}
	for _, entry := range gs.Lore {
		if entry.ID == "" {
			t.Errorf("Entry %q has no id", entry.Name)
		}
		if entry.UnlockedAtTurn != 5 {
			t.Errorf("Entry %q stamped turn %d, expected 5", entry.Name, entry.UnlockedAtTurn)
		}
	}
}

func TestGameState_AddLoreIsIdempotent(t *testing.T) {
	gs := NewGameState()

	first := gs.AddLore([]LoreEntry{{Category: LoreCharacter, Name: "Old Witch"}})
	if first != 1 {
		t.Fatalf("Expected 1 added, got %d", first)
	}

	// The same discovery in a later patch is dropped, case-insensitively
	gs.TurnCount = 7
	second := gs.AddLore([]LoreEntry{{Category: LoreCharacter, Name: "old witch", Description: "changed"}})
	if second != 0 {
		t.Errorf("Expected 0 added on repeat, got %d", second)
	}
	if len(gs.Lore) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(gs.Lore))
	}
	// The original entry is never mutated
	if gs.Lore[0].Name != "Old Witch" || gs.Lore[0].Description != "" {
		t.Errorf("Original entry was mutated: %+v", gs.Lore[0])
	}
}

func TestGameState_AddLoreSkipsEmptyName(t *testing.T) {
	gs := NewGameState()
	if added := gs.AddLore([]LoreEntry{{Category: LoreConcept, Name: ""}}); added != 0 {
		t.Errorf("Expected 0 added for empty name, got %d", added)
	}
}
