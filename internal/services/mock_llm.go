package services

import (
	"context"
	"sync"

	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

// MockNarrator is a mock implementation of NarratorService for testing
type MockNarrator struct {
	GenerateSegmentFunc func(ctx context.Context, previousNarrative, action string, gs *state.GameState) (*story.Segment, error)
	ChatWithGuideFunc   func(ctx context.Context, userMessage, currentNarrative string) (string, error)
	PingFunc            func(ctx context.Context) error

	// Track calls for testing
	GenerateSegmentCalls []GenerateSegmentCall
	ChatWithGuideCalls   []ChatWithGuideCall

	mu sync.Mutex // protects fields above
}

type GenerateSegmentCall struct {
	PreviousNarrative string
	Action            string
}

type ChatWithGuideCall struct {
	Message   string
	Narrative string
}

var _ NarratorService = (*MockNarrator)(nil)

// NewMockNarrator creates a new mock narrator service
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{
		GenerateSegmentCalls: make([]GenerateSegmentCall, 0),
	}
}

func (m *MockNarrator) GenerateSegment(ctx context.Context, previousNarrative, action string, gs *state.GameState) (*story.Segment, error) {
	m.mu.Lock()
	m.GenerateSegmentCalls = append(m.GenerateSegmentCalls, GenerateSegmentCall{
		PreviousNarrative: previousNarrative,
		Action:            action,
	})
	fn := m.GenerateSegmentFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, previousNarrative, action, gs)
	}

	// Default behavior - an empty but valid segment
	return &story.Segment{
		Title:       "Mock Scene",
		Narrative:   "Mock narrative.",
		Choices:     []string{"Continue", "Wait", "Look around"},
		ImagePrompt: "A mock scene",
	}, nil
}

func (m *MockNarrator) ChatWithGuide(ctx context.Context, userMessage, currentNarrative string) (string, error) {
	m.mu.Lock()
	m.ChatWithGuideCalls = append(m.ChatWithGuideCalls, ChatWithGuideCall{
		Message:   userMessage,
		Narrative: currentNarrative,
	})
	fn := m.ChatWithGuideFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, userMessage, currentNarrative)
	}
	return "The path ahead is yours to choose.", nil
}

func (m *MockNarrator) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// CallCount returns how many segment generations were requested.
func (m *MockNarrator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateSegmentCalls)
}
