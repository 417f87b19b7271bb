package state

import (
	"strings"

	"golang.org/x/text/cases"
)

// ItemType categorizes inventory items and drives equipment slot resolution.
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeMaterial   ItemType = "material"
	ItemTypeMisc       ItemType = "misc"
)

// ItemStats holds the optional numeric properties of an item.
type ItemStats struct {
	Attack  int `json:"attack,omitempty"`
	Defense int `json:"defense,omitempty"`
	Restore int `json:"restore,omitempty"`
}

// InventoryItem is a single held item. Name is the dedup identity when
// adding or removing by patch; ID is the instance identity used whenever
// a specific item is meant (equip, unequip), since two instances can
// share a name.
type InventoryItem struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Type        ItemType   `json:"type,omitempty"`
	Stats       *ItemStats `json:"stats,omitempty"`
}

// nameFolder performs Unicode case folding for name-keyed identity checks.
var nameFolder = cases.Fold()

// FoldName canonicalizes an item, lore or effect name for
// case-insensitive comparison.
func FoldName(name string) string {
	return nameFolder.String(strings.TrimSpace(name))
}

// SameName reports whether two names match case-insensitively.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
