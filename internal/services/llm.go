package services

import (
	"context"

	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

// Guide replies substituted when the provider returns nothing useful.
// Guide chat never fails toward the player; callers map an error to
// GuideUnavailableReply.
const (
	GuideSilentReply      = "The spirits are silent."
	GuideUnavailableReply = "I cannot answer that right now."
)

// NarratorService defines the interface for the narrative generation
// call: previous narrative + player action + state snapshot in, one
// structured segment out. Callers substitute story.FallbackSegment()
// when this returns an error; the error never reaches the state store.
type NarratorService interface {
	// GenerateSegment generates the next story segment
	GenerateSegment(ctx context.Context, previousNarrative, action string, gs *state.GameState) (*story.Segment, error)

	// ChatWithGuide answers an out-of-band player question as the
	// in-world guide. Free text in, free text out; no state changes.
	ChatWithGuide(ctx context.Context, userMessage, currentNarrative string) (string, error)

	// Ping checks provider reachability for health reporting
	Ping(ctx context.Context) error
}

// ImageService defines the interface for scene image generation. Failure
// or absence means "no image this turn", never an error surfaced into
// the reconciliation path.
type ImageService interface {
	// GenerateScene renders the visual prompt and returns an image
	// handle (data URL), or empty when no image could be produced
	GenerateScene(ctx context.Context, prompt string) (string, error)
}
