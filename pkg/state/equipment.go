package state

// EquipSlot identifies an equipment slot.
type EquipSlot string

const (
	SlotMainHand EquipSlot = "main_hand"
	SlotArmor    EquipSlot = "armor"
)

// Equipment holds the items the player has equipped. An item referenced
// by a slot is never simultaneously present in inventory.
type Equipment struct {
	MainHand *InventoryItem `json:"main_hand,omitempty"`
	Armor    *InventoryItem `json:"armor,omitempty"`
}

// SlotForType resolves the equipment slot for an item type. Only weapons
// and armor are equippable.
func SlotForType(t ItemType) (EquipSlot, bool) {
	switch t {
	case ItemTypeWeapon:
		return SlotMainHand, true
	case ItemTypeArmor:
		return SlotArmor, true
	default:
		return "", false
	}
}

// Equip moves the inventory item with the given instance id into the slot
// matching its type. If the slot is occupied, the held item returns to
// inventory first; nothing is ever silently discarded. The equipped item
// is removed from inventory by instance id, never by name, so a
// same-named duplicate is untouched. Returns false and leaves state
// unchanged when the id is unknown or the item type has no slot.
func (gs *GameState) Equip(itemID string) bool {
	item, ok := gs.FindItem(itemID)
	if !ok {
		return false
	}
	slot, ok := SlotForType(item.Type)
	if !ok {
		return false
	}

	if held := gs.slotItem(slot); held != nil {
		gs.Inventory = append(gs.Inventory, *held)
	}
	gs.removeItemByID(item.ID)
	gs.setSlot(slot, &item)
	return true
}

// Unequip moves the slot's item back into inventory and empties the slot.
// No-op returning false when the slot is already empty.
func (gs *GameState) Unequip(slot EquipSlot) bool {
	held := gs.slotItem(slot)
	if held == nil {
		return false
	}
	gs.Inventory = append(gs.Inventory, *held)
	gs.setSlot(slot, nil)
	return true
}

// TotalAttack is the attack contributed by equipped gear.
func (gs *GameState) TotalAttack() int {
	if gs.Equipment.MainHand != nil && gs.Equipment.MainHand.Stats != nil {
		return gs.Equipment.MainHand.Stats.Attack
	}
	return 0
}

// TotalDefense is the defense contributed by equipped gear.
func (gs *GameState) TotalDefense() int {
	if gs.Equipment.Armor != nil && gs.Equipment.Armor.Stats != nil {
		return gs.Equipment.Armor.Stats.Defense
	}
	return 0
}

func (gs *GameState) slotItem(slot EquipSlot) *InventoryItem {
	switch slot {
	case SlotMainHand:
		return gs.Equipment.MainHand
	case SlotArmor:
		return gs.Equipment.Armor
	}
	return nil
}

func (gs *GameState) setSlot(slot EquipSlot, item *InventoryItem) {
	switch slot {
	case SlotMainHand:
		gs.Equipment.MainHand = item
	case SlotArmor:
		gs.Equipment.Armor = item
	}
}
