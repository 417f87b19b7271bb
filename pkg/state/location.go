package state

import "github.com/google/uuid"

// WorldLocation is a named point on the world map. Name is the identity
// for the "is this new" check (case-sensitive exact match); ID is an
// opaque token minted on discovery.
type WorldLocation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	IsUnlocked  bool   `json:"is_unlocked"`
}

// travelPrefix is the reserved player command form handled locally:
// "Travel to <locationName>".
const travelPrefix = "Travel to "

// DiscoverLocation records a patch-declared location. If no existing
// entry matches the name exactly, a new unlocked location is minted,
// appended and made current. A same-named entry means the place is
// already discovered: the current pointer switches to it (idempotent
// re-entry). Returns the id of the current location.
func (gs *GameState) DiscoverLocation(name, description string, x, y int) string {
	for _, loc := range gs.Locations {
		if loc.Name == name {
			gs.CurrentLocID = loc.ID
			return loc.ID
		}
	}
	created := WorldLocation{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		X:           clampCoord(x),
		Y:           clampCoord(y),
		IsUnlocked:  true,
	}
	gs.Locations = append(gs.Locations, created)
	gs.CurrentLocID = created.ID
	return created.ID
}

// TravelTo resolves a location name against the known set and moves the
// current pointer if found. Unknown names leave the pointer unchanged.
func (gs *GameState) TravelTo(name string) bool {
	for _, loc := range gs.Locations {
		if loc.Name == name {
			gs.CurrentLocID = loc.ID
			return true
		}
	}
	return false
}

// ParseTravelAction extracts the destination from a "Travel to <name>"
// action string. Returns false for any other action.
func ParseTravelAction(action string) (string, bool) {
	if len(action) <= len(travelPrefix) || action[:len(travelPrefix)] != travelPrefix {
		return "", false
	}
	return action[len(travelPrefix):], true
}

// CurrentLocation returns the location the current pointer references.
func (gs *GameState) CurrentLocation() (WorldLocation, bool) {
	for _, loc := range gs.Locations {
		if loc.ID == gs.CurrentLocID {
			return loc, true
		}
	}
	return WorldLocation{}, false
}

func clampCoord(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
