package story

import (
	"encoding/json"
	"testing"

	"github.com/infinite-realms/engine/pkg/state"
)

func validSegment() *Segment {
	return &Segment{
		Title:       "The Crossroads",
		Narrative:   "Three paths split before you under a bruised sky.",
		Choices:     []string{"Take the left path", "Take the right path", "Make camp"},
		ImagePrompt: "A forked dirt road at dusk",
	}
}

func TestSegment_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Segment)
		expectErr bool
	}{
		{"valid segment", func(s *Segment) {}, false},
		{"missing title", func(s *Segment) { s.Title = "" }, true},
		{"missing narrative", func(s *Segment) { s.Narrative = "" }, true},
		{"missing choices", func(s *Segment) { s.Choices = nil }, true},
		{"two choices", func(s *Segment) { s.Choices = []string{"Go", "Stay"} }, true},
		{"four choices", func(s *Segment) { s.Choices = []string{"Go", "Stay", "Hide", "Run"} }, true},
		{"empty choice string", func(s *Segment) { s.Choices = []string{"Go", "", "Stay"} }, true},
		{"missing image prompt", func(s *Segment) { s.ImagePrompt = "" }, true},
		{"valid sound", func(s *Segment) { s.SoundEnvironment = SoundDungeon }, false},
		{"unknown sound", func(s *Segment) { s.SoundEnvironment = "disco" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSegment()
			tt.mutate(s)
			err := s.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestSegment_Sanitize(t *testing.T) {
	s := validSegment()
	s.NewInventoryItems = []state.InventoryItem{
		{Name: "Strange Orb", Type: "artifact"},
		{Name: "Sword", Type: state.ItemTypeWeapon},
	}
	s.NewStatusEffects = []state.StatusEffect{
		{Name: "Cursed", Type: "hex", Duration: 0},
		{Name: "Blessed", Type: state.EffectBuff, Duration: 3},
	}
	s.CombatUpdate = &state.CombatUpdate{NewEnemyHealth: 10, Status: "stalemate"}

	s.Sanitize()

	if s.NewInventoryItems[0].Type != state.ItemTypeMisc {
		t.Errorf("Unknown item type should coerce to misc, got %q", s.NewInventoryItems[0].Type)
	}
	if s.NewInventoryItems[1].Type != state.ItemTypeWeapon {
		t.Error("Known item type should be untouched")
	}
	if s.NewStatusEffects[0].Type != state.EffectDebuff || s.NewStatusEffects[0].Duration != 1 {
		t.Errorf("Unknown effect should coerce to debuff with duration 1, got %+v", s.NewStatusEffects[0])
	}
	if s.NewStatusEffects[1].Duration != 3 {
		t.Error("Valid effect should be untouched")
	}
	if s.CombatUpdate.Status != state.CombatFled {
		t.Errorf("Unknown combat status should coerce to fled, got %q", s.CombatUpdate.Status)
	}
}

func TestFallbackSegment(t *testing.T) {
	s := FallbackSegment()
	if err := s.Validate(); err != nil {
		t.Fatalf("Fallback segment must always validate: %v", err)
	}
	if s.Title != "The Void" {
		t.Errorf("Unexpected fallback title: %q", s.Title)
	}
	// The fallback carries no state changes
	if len(s.NewInventoryItems) != 0 || s.HealthChange != 0 || s.GoldChange != 0 ||
		s.StartCombat != nil || s.CombatUpdate != nil || s.NewLocation != nil {
		t.Error("Fallback segment must not carry state changes")
	}
}

// Absent optional fields must decode to zero values, not errors.
func TestSegment_DecodesMinimalPatch(t *testing.T) {
	raw := `{"title":"A Quiet Moment","narrative":"Nothing stirs.","choices":["Continue","Rest","Look around"],"image_prompt":"a calm field"}`
	var s Segment
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Minimal segment should validate: %v", err)
	}
	if s.NewLocation != nil || s.CombatUpdate != nil || len(s.NewLore) != 0 {
		t.Error("Absent fields should stay zero")
	}
}
