// Package crafting holds the static recipe catalog and the
// ingredient-consumption transaction against the player inventory.
package crafting

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/infinite-realms/engine/pkg/state"
)

// Ingredient is a required name/count pair. Ingredients are fungible by
// name, case-insensitively.
type Ingredient struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Recipe describes one craftable item. Recipes are static catalog data,
// not part of mutable game state.
type Recipe struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Result      state.InventoryItem `json:"result"`
	Ingredients []Ingredient        `json:"ingredients"`
}

// Recipes is the static crafting catalog.
var Recipes = []Recipe{
	{
		ID:          "iron-armor",
		Name:        "Iron Armor",
		Description: "Sturdy protection against physical attacks.",
		Result:      state.InventoryItem{Name: "Iron Armor", Description: "A complete set of iron plates.", Icon: "🛡️", Type: state.ItemTypeArmor, Stats: &state.ItemStats{Defense: 10}},
		Ingredients: []Ingredient{{Name: "Iron Ore", Count: 2}, {Name: "Leather Scraps", Count: 1}},
	},
	{
		ID:          "steel-sword",
		Name:        "Steel Sword",
		Description: "A finely crafted blade.",
		Result:      state.InventoryItem{Name: "Steel Sword", Description: "Sharp and well-balanced.", Icon: "⚔️", Type: state.ItemTypeWeapon, Stats: &state.ItemStats{Attack: 12}},
		Ingredients: []Ingredient{{Name: "Iron Ore", Count: 3}, {Name: "Wood", Count: 1}},
	},
	{
		ID:          "health-potion",
		Name:        "Health Potion",
		Description: "Restores a small amount of health.",
		Result:      state.InventoryItem{Name: "Health Potion", Description: "A red bubbling liquid.", Icon: "🧪", Type: state.ItemTypeConsumable, Stats: &state.ItemStats{Restore: 25}},
		Ingredients: []Ingredient{{Name: "Red Herb", Count: 1}, {Name: "Water Flask", Count: 1}},
	},
	{
		ID:          "torch",
		Name:        "Torch",
		Description: "Provides light in dark places.",
		Result:      state.InventoryItem{Name: "Torch", Description: "A simple wooden torch wrapped in cloth.", Icon: "🔥", Type: state.ItemTypeMisc},
		Ingredients: []Ingredient{{Name: "Wood", Count: 1}, {Name: "Cloth", Count: 1}},
	},
}

// FindRecipe looks up a recipe by id.
func FindRecipe(id string) (Recipe, bool) {
	for _, r := range Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

// CanAfford reports whether the inventory holds every ingredient in the
// required count simultaneously.
func CanAfford(gs *state.GameState, r Recipe) bool {
	for _, ing := range r.Ingredients {
		if gs.CountItemsByName(ing.Name) < ing.Count {
			return false
		}
	}
	return true
}

// Craft runs the crafting transaction: the affordability check happens
// fully before any mutation, so a failed craft leaves the inventory
// untouched. On success the ingredients are consumed, one fresh instance
// of the result is appended, and a history line records the craft so
// subsequent model calls have the context. Returns false on an
// unaffordable recipe.
func Craft(gs *state.GameState, r Recipe) bool {
	if !CanAfford(gs, r) {
		return false
	}
	for _, ing := range r.Ingredients {
		gs.ConsumeItemsByName(ing.Name, ing.Count)
	}
	result := r.Result
	result.ID = uuid.NewString()
	gs.Inventory = append(gs.Inventory, result)
	gs.AppendHistory(fmt.Sprintf("Crafted %s", r.Result.Name))
	return true
}
