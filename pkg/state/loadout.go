package state

import "github.com/google/uuid"

// InitialQuest is the quest every new character starts with.
const InitialQuest = "Find your way to the nearest settlement."

// ClassLoadout is the starting kit for a character class.
type ClassLoadout struct {
	Inventory   []InventoryItem
	Health      int
	Gold        int
	Description string
	Icon        string
}

// ClassLoadouts is the static catalog of playable classes.
var ClassLoadouts = map[string]ClassLoadout{
	"Warrior": {
		Inventory: []InventoryItem{
			{Name: "Rusty Sword", Description: "Reliable steel.", Icon: "⚔️", Type: ItemTypeWeapon, Stats: &ItemStats{Attack: 5}},
			{Name: "Wooden Shield", Description: "Splintered but sturdy.", Icon: "🛡️", Type: ItemTypeArmor, Stats: &ItemStats{Defense: 3}},
			{Name: "Health Potion", Description: "Restores minimal health.", Icon: "🧪", Type: ItemTypeConsumable, Stats: &ItemStats{Restore: 20}},
		},
		Health:      120,
		Gold:        10,
		Description: "A master of arms and armor, built for the front lines.",
		Icon:        "⚔️",
	},
	"Mage": {
		Inventory: []InventoryItem{
			{Name: "Gnarled Staff", Description: "Hums with faint energy.", Icon: "🔮", Type: ItemTypeWeapon, Stats: &ItemStats{Attack: 8}},
			{Name: "Cloth Robes", Description: "Simple protection.", Icon: "👘", Type: ItemTypeArmor, Stats: &ItemStats{Defense: 1}},
			{Name: "Mana Potion", Description: "Blue and bubbling.", Icon: "🧪", Type: ItemTypeConsumable},
		},
		Health:      70,
		Gold:        30,
		Description: "A scholar of the arcane, wielding destructive magic.",
		Icon:        "🔮",
	},
	"Rogue": {
		Inventory: []InventoryItem{
			{Name: "Twin Daggers", Description: "Sharp and concealable.", Icon: "🗡️", Type: ItemTypeWeapon, Stats: &ItemStats{Attack: 6}},
			{Name: "Leather Vest", Description: "Light and flexible.", Icon: "🧥", Type: ItemTypeArmor, Stats: &ItemStats{Defense: 2}},
			{Name: "Thieves Tools", Description: "For opening closed doors.", Icon: "🗝️", Type: ItemTypeMisc},
		},
		Health:      90,
		Gold:        50,
		Description: "A shadow in the night, skilled in stealth and trickery.",
		Icon:        "🗡️",
	},
}

// NewCharacterState builds the full starting state for a created
// character: class loadout applied, starter weapon and armor
// auto-equipped, and the initial location discovered and current.
// An unknown class falls back to default vitals with an empty kit.
func NewCharacterState(name, class, appearance string) *GameState {
	gs := NewGameState()
	gs.CharacterName = name
	gs.CharacterClass = class
	gs.Appearance = appearance
	gs.CurrentQuest = InitialQuest

	if loadout, ok := ClassLoadouts[class]; ok {
		if loadout.Health > MaxHealth {
			gs.Health = MaxHealth
		} else {
			gs.Health = loadout.Health
		}
		gs.Gold = loadout.Gold
		for _, item := range loadout.Inventory {
			item.ID = uuid.NewString()
			gs.Inventory = append(gs.Inventory, item)
		}
		// Auto-equip the first weapon and armor in the kit. Candidate ids
		// are collected up front because Equip mutates the inventory.
		var starters []string
		for _, item := range gs.Inventory {
			if _, equippable := SlotForType(item.Type); equippable {
				starters = append(starters, item.ID)
			}
		}
		for _, id := range starters {
			if item, ok := gs.FindItem(id); ok {
				if slot, _ := SlotForType(item.Type); gs.slotItem(slot) == nil {
					gs.Equip(id)
				}
			}
		}
	}

	gs.Locations = []WorldLocation{{
		ID:          "start",
		Name:        "The Awakening Site",
		Description: "Where your journey begins.",
		X:           50,
		Y:           50,
		IsUnlocked:  true,
	}}
	gs.CurrentLocID = "start"
	return gs
}
