package services

import (
	"fmt"
	"strings"

	"github.com/infinite-realms/engine/pkg/state"
)

// ArtStyle is appended to every image prompt for visual consistency.
const ArtStyle = "Digital Fantasy Art, detailed, cinematic lighting, masterpiece, 8k resolution, consistent character design, atmospheric"

// SystemInstruction is the dungeon-master contract sent with every
// narrative request. The model must return a single JSON object matching
// the story.Segment schema.
const SystemInstruction = `You are an advanced Dungeon Master AI for a Choose-Your-Own-Adventure game.
Your goal is to generate an immersive story segment based on the user's actions.
You MUST also manage the game state (Inventory, Quests, Health, Gold, Locations, Combat, Lore) logically.

Rules:
1. Story: Write compelling, descriptive narrative (approx 100-150 words).
2. Choices: Provide 3 distinct, interesting choices for the user.
3. Image Prompt: Create a detailed visual description of the current scene. ALWAYS include the character's visual appearance.
4. State Management:
   - Handle inventory, quest, health, and gold updates as usual.
   - Loot/Resources: Occasionally reward the player with crafting resources like "Iron Ore", "Leather Scraps", "Wood", "Red Herb".
   - EQUIPMENT: When generating new items, provide a 'type' (weapon, armor, consumable, material, misc) and 'stats' if applicable.
   - Map: Return 'new_location' only for SIGNIFICANT new named places.
   - Lore: Return significant new characters, factions, history, monsters or concepts in 'new_lore'.
5. COMBAT:
   - Return 'start_combat' with enemy details to begin a fight; set 'sound_environment' to 'battle'.
   - During combat, react tactically to the player's specific action, calculate damage from equipped gear,
     return 'combat_update' with 'new_enemy_health', 'status' and 'enemy_action', and include combat choices.
   - Damage to the player is a negative 'health_change'.
6. For 'sound_environment' choose one of: nature, dungeon, city, battle, mystic.

Return the response strictly as a single JSON object matching the schema. No prose outside the JSON.`

// BuildTurnContext renders the game state snapshot, recent history and
// the player's action into the user message for the narrator call.
func BuildTurnContext(previousNarrative, action string, gs *state.GameState) string {
	var b strings.Builder

	b.WriteString("Current Game State:\n")
	fmt.Fprintf(&b, "- Quest: %s\n", gs.CurrentQuest)
	fmt.Fprintf(&b, "- Inventory: %s\n", inventoryContext(gs))
	fmt.Fprintf(&b, "- Equipped: Main Hand: %s, Armor: %s\n", slotContext(gs.Equipment.MainHand), slotContext(gs.Equipment.Armor))
	fmt.Fprintf(&b, "- Total Stats: Attack: %d, Defense: %d\n", gs.TotalAttack(), gs.TotalDefense())
	fmt.Fprintf(&b, "- Health: %d\n", gs.Health)
	fmt.Fprintf(&b, "- Gold: %d\n", gs.Gold)
	fmt.Fprintf(&b, "- Active Status Effects: %s\n", effectsContext(gs))
	fmt.Fprintf(&b, "- Character: %s (%s)\n", gs.CharacterName, gs.CharacterClass)
	fmt.Fprintf(&b, "- Appearance: %s\n", gs.Appearance)
	fmt.Fprintf(&b, "- Known Locations: %s\n", locationContext(gs))
	fmt.Fprintf(&b, "- Known Lore: %s\n", loreContext(gs))
	fmt.Fprintf(&b, "- Combat: %s\n", combatContext(gs))

	if len(gs.History) > 0 {
		b.WriteString("\nPrevious Story Context (Summary):\n")
		start := len(gs.History) - 3
		if start < 0 {
			start = 0
		}
		b.WriteString(strings.Join(gs.History[start:], "\n"))
		b.WriteString("\n")
	}

	if previousNarrative != "" {
		b.WriteString("\nLast Narrative Segment:\n")
		b.WriteString(previousNarrative)
		b.WriteString("\n")
	}

	b.WriteString("\nUser Action:\n")
	b.WriteString(action)
	return b.String()
}

// BuildGuideContext renders a guide chat question. The guide answers in
// character and must not reveal upcoming events.
func BuildGuideContext(userMessage, currentNarrative string) string {
	var b strings.Builder
	b.WriteString("Context: The user is playing a text adventure.\n")
	fmt.Fprintf(&b, "Current Scene Narrative: %q\n", currentNarrative)
	fmt.Fprintf(&b, "User Question: %q\n\n", userMessage)
	b.WriteString("Answer the user's question briefly and helpfully, acting as a mysterious guide or inner voice. Do not spoil future events.")
	return b.String()
}

func inventoryContext(gs *state.GameState) string {
	if len(gs.Inventory) == 0 {
		return "Empty"
	}
	parts := make([]string, 0, len(gs.Inventory))
	for _, item := range gs.Inventory {
		desc := fmt.Sprintf("%s (%s)", item.Name, itemType(item))
		if item.Stats != nil {
			var stats []string
			if item.Stats.Attack > 0 {
				stats = append(stats, fmt.Sprintf("Atk: %d", item.Stats.Attack))
			}
			if item.Stats.Defense > 0 {
				stats = append(stats, fmt.Sprintf("Def: %d", item.Stats.Defense))
			}
			if item.Stats.Restore > 0 {
				stats = append(stats, fmt.Sprintf("Restore: %d", item.Stats.Restore))
			}
			if len(stats) > 0 {
				desc += fmt.Sprintf(" [%s]", strings.Join(stats, ", "))
			}
		}
		parts = append(parts, desc)
	}
	return strings.Join(parts, ", ")
}

func itemType(item state.InventoryItem) state.ItemType {
	if item.Type == "" {
		return state.ItemTypeMisc
	}
	return item.Type
}

func slotContext(item *state.InventoryItem) string {
	if item == nil {
		return "None"
	}
	return item.Name
}

func effectsContext(gs *state.GameState) string {
	if len(gs.ActiveEffects) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(gs.ActiveEffects))
	for _, e := range gs.ActiveEffects {
		parts = append(parts, fmt.Sprintf("%s (%s, %d turns left): %s", e.Name, e.Type, e.Duration, e.Description))
	}
	return strings.Join(parts, ", ")
}

func locationContext(gs *state.GameState) string {
	if len(gs.Locations) == 0 {
		return "None yet"
	}
	parts := make([]string, 0, len(gs.Locations))
	for _, loc := range gs.Locations {
		s := fmt.Sprintf("%s (x:%d, y:%d)", loc.Name, loc.X, loc.Y)
		if loc.ID == gs.CurrentLocID {
			s += " [CURRENT]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func loreContext(gs *state.GameState) string {
	if len(gs.Lore) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(gs.Lore))
	for _, entry := range gs.Lore {
		parts = append(parts, entry.Name)
	}
	return strings.Join(parts, ", ")
}

func combatContext(gs *state.GameState) string {
	c := gs.Combat
	if c == nil || !c.IsActive {
		return "None"
	}
	s := fmt.Sprintf("ACTIVE COMBAT vs %s (HP: %d/%d)", c.EnemyName, c.EnemyHealth, c.MaxHealth)
	if c.LastAction != "" {
		s += fmt.Sprintf("; last enemy move: %q", c.LastAction)
	}
	return s
}
