package services

import (
	"context"
	"sync"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	GenerateSceneFunc func(ctx context.Context, prompt string) (string, error)

	GenerateSceneCalls []string

	mu sync.Mutex
}

var _ ImageService = (*MockImageService)(nil)

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		GenerateSceneCalls: make([]string, 0),
	}
}

func (m *MockImageService) GenerateScene(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.GenerateSceneCalls = append(m.GenerateSceneCalls, prompt)
	fn := m.GenerateSceneFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return "", nil
}

// CallCount returns how many scene generations were requested.
func (m *MockImageService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateSceneCalls)
}
