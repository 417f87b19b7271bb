package story

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/infinite-realms/engine/pkg/state"
)

// SoundEnvironment values the narrator may request for a scene.
const (
	SoundNature  = "nature"
	SoundDungeon = "dungeon"
	SoundCity    = "city"
	SoundBattle  = "battle"
	SoundMystic  = "mystic"
)

// NewLocation is the map portion of a patch: a significant named place
// the player has arrived at.
type NewLocation struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// StartCombat is the patch field that initiates an encounter.
type StartCombat struct {
	EnemyName   string `json:"enemy_name" validate:"required"`
	Health      int    `json:"health" validate:"gt=0"`
	Description string `json:"description"`
}

// Segment is one narrated turn returned by the model: the narrative plus
// a semi-trusted delta against the game state. Every optional field's
// absence means "no change"; the reconciler is defined for absence, not
// just presence.
type Segment struct {
	Title            string   `json:"title" validate:"required"`
	Narrative        string   `json:"narrative" validate:"required"`
	Choices          []string `json:"choices" validate:"required,len=3,dive,required"`
	ImagePrompt      string   `json:"image_prompt" validate:"required"`
	SoundEnvironment string   `json:"sound_environment,omitempty" validate:"omitempty,oneof=nature dungeon city battle mystic"`

	NewInventoryItems     []state.InventoryItem `json:"new_inventory_items,omitempty"`
	RemovedInventoryItems []string              `json:"removed_inventory_items,omitempty"`
	UpdatedQuest          string                `json:"updated_quest,omitempty"`
	HealthChange          int                   `json:"health_change,omitempty"`
	GoldChange            int                   `json:"gold_change,omitempty"`
	NewLocation           *NewLocation          `json:"new_location,omitempty"`
	StartCombat           *StartCombat          `json:"start_combat,omitempty"`
	CombatUpdate          *state.CombatUpdate   `json:"combat_update,omitempty"`
	NewLore               []state.LoreEntry     `json:"new_lore,omitempty"`
	NewStatusEffects      []state.StatusEffect  `json:"new_status_effects,omitempty"`
	RemovedStatusEffects  []string              `json:"removed_status_effects,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func segmentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks the required narrative fields and enum values before
// the segment is allowed anywhere near the state store. Model output is
// semi-trusted; a segment that fails here is replaced by the fallback
// rather than merged.
func (s *Segment) Validate() error {
	if err := segmentValidator().Struct(s); err != nil {
		return err
	}
	return nil
}

// Sanitize coerces out-of-range optional fields instead of rejecting the
// whole segment: unknown item types become misc, unknown effect types
// become debuff, and a combat update with an unknown status is treated as
// a resolution ("fled") rather than dropped.
func (s *Segment) Sanitize() {
	for i, item := range s.NewInventoryItems {
		switch item.Type {
		case state.ItemTypeWeapon, state.ItemTypeArmor, state.ItemTypeConsumable, state.ItemTypeMaterial, state.ItemTypeMisc:
		default:
			s.NewInventoryItems[i].Type = state.ItemTypeMisc
		}
	}
	for i, effect := range s.NewStatusEffects {
		switch effect.Type {
		case state.EffectBuff, state.EffectDebuff:
		default:
			s.NewStatusEffects[i].Type = state.EffectDebuff
		}
		if effect.Duration < 1 {
			s.NewStatusEffects[i].Duration = 1
		}
	}
	if s.CombatUpdate != nil {
		switch s.CombatUpdate.Status {
		case state.CombatOngoing, state.CombatVictory, state.CombatDefeat, state.CombatFled:
		default:
			s.CombatUpdate.Status = state.CombatFled
		}
	}
}

// FallbackSegment is the deterministic segment substituted when the
// narrative call fails. It carries no state changes, so a failed call can
// never corrupt the game state.
func FallbackSegment() *Segment {
	return &Segment{
		Title:            "The Void",
		Narrative:        "A mysterious fog rolls in, obscuring your vision. The world seems to pause as the gods contemplate your fate. Please try again.",
		Choices:          []string{"Wait", "Yell out", "Check surroundings"},
		ImagePrompt:      "A thick mysterious fog in a dark void",
		SoundEnvironment: SoundMystic,
	}
}
