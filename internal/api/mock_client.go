package api

import (
	"context"
	"sync"

	"github.com/diogo/spielberg/internal/models"
)

// MockGeminiClient is a mock implementation of GeminiClientInterface for testing
type MockGeminiClient struct {
	// Mock return values
	Model              models.Model
	IsClosedVal        bool
	GenerateContentVal *models.ModelOutput
	GenerateContentErr error
	// GenerateContentFunc, when set, takes precedence over the fixed values
	GenerateContentFunc func(ctx context.Context, contents []models.Content, opts *GenerateOptions) (*models.ModelOutput, error)

	// Call counters/recorders
	mu           sync.Mutex
	CloseCalled  bool
	Calls        int
	LastContents []models.Content
	LastOptions  *GenerateOptions
}

// Ensure MockGeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*MockGeminiClient)(nil)

// NewMockReply returns a mock whose every call answers with text
func NewMockReply(text string) *MockGeminiClient {
	return &MockGeminiClient{
		Model: models.DefaultModel,
		GenerateContentVal: &models.ModelOutput{
			Candidates: []models.Candidate{{Text: text, FinishReason: models.FinishStop}},
		},
	}
}

func (m *MockGeminiClient) GenerateContent(ctx context.Context, contents []models.Content, opts *GenerateOptions) (*models.ModelOutput, error) {
	m.mu.Lock()
	m.Calls++
	m.LastContents = copyHistory(contents)
	m.LastOptions = opts
	fn := m.GenerateContentFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, contents, opts)
	}
	return m.GenerateContentVal, m.GenerateContentErr
}

// CallCount returns how many times GenerateContent ran
func (m *MockGeminiClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

func (m *MockGeminiClient) StartChat(opts ...ChatOption) *ChatSession {
	return newChatSession(m, m.GetModel(), nil, opts...)
}

func (m *MockGeminiClient) GetModel() models.Model {
	if m.Model.IsUnspecified() {
		return models.DefaultModel
	}
	return m.Model
}

func (m *MockGeminiClient) SetModel(model models.Model) {
	m.Model = model
}

func (m *MockGeminiClient) IsClosed() bool {
	return m.IsClosedVal
}

func (m *MockGeminiClient) Close() {
	m.CloseCalled = true
	m.IsClosedVal = true
}
