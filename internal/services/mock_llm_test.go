package services

import (
	"context"
	"errors"
	"testing"

	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

func TestMockNarrator_Defaults(t *testing.T) {
	mock := NewMockNarrator()
	gs := state.NewGameState()

	seg, err := mock.GenerateSegment(context.Background(), "previous", "look around", gs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if seg.Title != "Mock Scene" {
		t.Errorf("Expected default title 'Mock Scene', got %q", seg.Title)
	}
	if err := seg.Validate(); err != nil {
		t.Errorf("Expected default segment to validate, got %v", err)
	}

	if mock.CallCount() != 1 {
		t.Errorf("Expected 1 recorded call, got %d", mock.CallCount())
	}
	call := mock.GenerateSegmentCalls[0]
	if call.PreviousNarrative != "previous" || call.Action != "look around" {
		t.Errorf("Unexpected recorded call %+v", call)
	}

	if err := mock.Ping(context.Background()); err != nil {
		t.Errorf("Expected default Ping to succeed, got %v", err)
	}
}

func TestMockNarrator_ChatWithGuide(t *testing.T) {
	mock := NewMockNarrator()

	reply, err := mock.ChatWithGuide(context.Background(), "where am I", "A foggy moor.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if reply == "" {
		t.Error("Expected a non-empty default reply")
	}
	if len(mock.ChatWithGuideCalls) != 1 {
		t.Fatalf("Expected 1 recorded call, got %d", len(mock.ChatWithGuideCalls))
	}
	call := mock.ChatWithGuideCalls[0]
	if call.Message != "where am I" || call.Narrative != "A foggy moor." {
		t.Errorf("Unexpected recorded call %+v", call)
	}

	wantErr := errors.New("guide down")
	mock.ChatWithGuideFunc = func(ctx context.Context, userMessage, currentNarrative string) (string, error) {
		return "", wantErr
	}
	if _, err := mock.ChatWithGuide(context.Background(), "hi", ""); !errors.Is(err, wantErr) {
		t.Errorf("Expected custom error, got %v", err)
	}
}

func TestMockNarrator_CustomFuncs(t *testing.T) {
	mock := NewMockNarrator()
	wantErr := errors.New("narrator down")
	mock.GenerateSegmentFunc = func(ctx context.Context, previousNarrative, action string, gs *state.GameState) (*story.Segment, error) {
		return nil, wantErr
	}
	mock.PingFunc = func(ctx context.Context) error {
		return wantErr
	}

	_, err := mock.GenerateSegment(context.Background(), "", "act", state.NewGameState())
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected custom error, got %v", err)
	}
	if err := mock.Ping(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Expected custom ping error, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("Expected failed call to be recorded, got %d", mock.CallCount())
	}
}

func TestMockImageService_Defaults(t *testing.T) {
	mock := NewMockImageService()

	url, err := mock.GenerateScene(context.Background(), "a dark cave")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if url != "" {
		t.Errorf("Expected empty url by default, got %q", url)
	}
	if mock.CallCount() != 1 {
		t.Errorf("Expected 1 recorded call, got %d", mock.CallCount())
	}
	if mock.GenerateSceneCalls[0] != "a dark cave" {
		t.Errorf("Unexpected recorded prompt %q", mock.GenerateSceneCalls[0])
	}

	mock.GenerateSceneFunc = func(ctx context.Context, prompt string) (string, error) {
		return "data:image/png;base64,abc", nil
	}
	url, err = mock.GenerateScene(context.Background(), "a bright field")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if url != "data:image/png;base64,abc" {
		t.Errorf("Expected stubbed url, got %q", url)
	}
}
