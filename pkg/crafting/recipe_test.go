package crafting

import (
	"strings"
	"testing"

	"github.com/infinite-realms/engine/pkg/state"
)

func inventoryOf(names ...string) []state.InventoryItem {
	items := make([]state.InventoryItem, 0, len(names))
	for i, name := range names {
		items = append(items, state.InventoryItem{ID: string(rune('a' + i)), Name: name, Type: state.ItemTypeMaterial})
	}
	return items
}

func TestFindRecipe(t *testing.T) {
	r, ok := FindRecipe("steel-sword")
	if !ok || r.Name != "Steel Sword" {
		t.Errorf("Expected Steel Sword, got %+v ok=%v", r, ok)
	}
	if _, ok := FindRecipe("philosopher-stone"); ok {
		t.Error("Expected lookup miss for unknown recipe")
	}
}

func TestCanAfford(t *testing.T) {
	recipe, _ := FindRecipe("iron-armor")

	gs := state.NewGameState()
	gs.Inventory = inventoryOf("Iron Ore", "Iron Ore", "Leather Scraps")
	if !CanAfford(gs, recipe) {
		t.Error("Expected exact ingredient counts to afford the recipe")
	}

	gs.Inventory = inventoryOf("Iron Ore", "Leather Scraps")
	if CanAfford(gs, recipe) {
		t.Error("One Iron Ore short should not afford the recipe")
	}

	// Ingredient matching is case-insensitive
	gs.Inventory = inventoryOf("iron ore", "IRON ORE", "leather scraps")
	if !CanAfford(gs, recipe) {
		t.Error("Ingredient matching should be case-insensitive")
	}
}

func TestCraft(t *testing.T) {
	recipe, _ := FindRecipe("iron-armor")

	gs := state.NewGameState()
	gs.Inventory = inventoryOf("Iron Ore", "Iron Ore", "Leather Scraps", "Wood")

	if !Craft(gs, recipe) {
		t.Fatal("Expected craft to succeed")
	}
	if gs.CountItemsByName("Iron Ore") != 0 {
		t.Errorf("Iron Ore should be fully consumed, %d left", gs.CountItemsByName("Iron Ore"))
	}
	if gs.CountItemsByName("Leather Scraps") != 0 {
		t.Error("Leather Scraps should be consumed")
	}
	if gs.CountItemsByName("Wood") != 1 {
		t.Error("Wood is not an ingredient and should be untouched")
	}
	if gs.CountItemsByName("Iron Armor") != 1 {
		t.Error("Expected one Iron Armor crafted")
	}

	// The crafted instance gets a fresh id
	for _, item := range gs.Inventory {
		if item.Name == "Iron Armor" && item.ID == "" {
			t.Error("Crafted item has no id")
		}
	}

	// A history line records the craft
	found := false
	for _, line := range gs.History {
		if strings.Contains(line, "Crafted Iron Armor") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a craft history line, got %v", gs.History)
	}
}

// A failed craft must not consume anything: the check runs fully before
// any mutation.
func TestCraft_AtomicOnFailure(t *testing.T) {
	recipe, _ := FindRecipe("iron-armor")

	gs := state.NewGameState()
	gs.Inventory = inventoryOf("Iron Ore", "Leather Scraps")

	if Craft(gs, recipe) {
		t.Fatal("Expected craft to fail")
	}
	if gs.CountItemsByName("Iron Ore") != 1 || gs.CountItemsByName("Leather Scraps") != 1 {
		t.Errorf("Failed craft must leave inventory untouched: %+v", gs.Inventory)
	}
	if gs.CountItemsByName("Iron Armor") != 0 {
		t.Error("No result should appear on failure")
	}
	if len(gs.History) != 0 {
		t.Error("No history line should be written on failure")
	}
}

func TestRecipeCatalogIsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Recipes {
		if r.ID == "" || r.Name == "" || r.Result.Name == "" {
			t.Errorf("Malformed recipe: %+v", r)
		}
		if seen[r.ID] {
			t.Errorf("Duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = true
		if len(r.Ingredients) == 0 {
			t.Errorf("Recipe %q has no ingredients", r.ID)
		}
		for _, ing := range r.Ingredients {
			if ing.Count < 1 {
				t.Errorf("Recipe %q ingredient %q has count %d", r.ID, ing.Name, ing.Count)
			}
		}
	}
}
