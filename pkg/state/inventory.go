package state

import "github.com/google/uuid"

// AddInventoryItems appends incoming items to the inventory, skipping any
// whose name already exists (case-insensitive). The player never holds two
// stacks with the same name; a duplicate is silently dropped, not an
// error. Items without an id are minted one. Returns the number of items
// actually added.
func (gs *GameState) AddInventoryItems(items []InventoryItem) int {
	added := 0
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		if gs.hasItemNamed(item.Name) {
			continue
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		gs.Inventory = append(gs.Inventory, item)
		added++
	}
	return added
}

// RemoveInventoryByName removes every inventory item whose name matches
// one of the given names (case-insensitive). This is a set-based
// remove-all operation, not a decrement; removal of a name not held is a
// silent no-op. Returns the number of items removed.
func (gs *GameState) RemoveInventoryByName(names []string) int {
	if len(names) == 0 {
		return 0
	}
	toRemove := make(map[string]struct{}, len(names))
	for _, name := range names {
		toRemove[FoldName(name)] = struct{}{}
	}
	removed := 0
	for i := len(gs.Inventory) - 1; i >= 0; i-- {
		if _, ok := toRemove[FoldName(gs.Inventory[i].Name)]; ok {
			gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
			removed++
		}
	}
	return removed
}

// CountItemsByName counts inventory items matching a name,
// case-insensitively. Duplicate-named instances are fungible.
func (gs *GameState) CountItemsByName(name string) int {
	count := 0
	for _, item := range gs.Inventory {
		if SameName(item.Name, name) {
			count++
		}
	}
	return count
}

// ConsumeItemsByName removes up to n items matching a name, scanning in
// reverse. Returns the number actually removed.
func (gs *GameState) ConsumeItemsByName(name string, n int) int {
	removed := 0
	for i := len(gs.Inventory) - 1; i >= 0 && removed < n; i-- {
		if SameName(gs.Inventory[i].Name, name) {
			gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
			removed++
		}
	}
	return removed
}

// FindItem returns the inventory item with the given instance id.
func (gs *GameState) FindItem(id string) (InventoryItem, bool) {
	for _, item := range gs.Inventory {
		if item.ID == id {
			return item, true
		}
	}
	return InventoryItem{}, false
}

func (gs *GameState) hasItemNamed(name string) bool {
	for _, item := range gs.Inventory {
		if SameName(item.Name, name) {
			return true
		}
	}
	return false
}

// removeItemByID removes the exact instance with the given id.
func (gs *GameState) removeItemByID(id string) bool {
	for i, item := range gs.Inventory {
		if item.ID == id {
			gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
			return true
		}
	}
	return false
}
