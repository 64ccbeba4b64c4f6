package api

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/models"
)

// ChatSession maintains conversation context across messages.
// It is owned by whoever started it and passed explicitly to the code that sends.
type ChatSession struct {
	client            contentGenerator
	id                string
	logger            *zap.Logger
	mu                sync.RWMutex // Protects model, history, lastOutput
	model             models.Model
	systemInstruction string
	history           []models.Content
	lastOutput        *models.ModelOutput
}

// ChatOption configures a ChatSession
type ChatOption func(*ChatSession)

// WithSystemInstruction sets the system instruction sent with every turn
func WithSystemInstruction(instruction string) ChatOption {
	return func(s *ChatSession) {
		s.systemInstruction = instruction
	}
}

// WithHistory seeds the session with prior turns
func WithHistory(history []models.Content) ChatOption {
	return func(s *ChatSession) {
		s.history = copyHistory(history)
	}
}

// WithSessionModel overrides the client's default model for this session
func WithSessionModel(model models.Model) ChatOption {
	return func(s *ChatSession) {
		if !model.IsUnspecified() {
			s.model = model
		}
	}
}

func newChatSession(client contentGenerator, model models.Model, logger *zap.Logger, opts ...ChatOption) *ChatSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ChatSession{
		client: client,
		id:     uuid.NewString(),
		model:  model,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.With(zap.String("session", s.id))
	return s
}

// copyHistory creates a copy of the history slice to avoid races
func copyHistory(h []models.Content) []models.Content {
	if h == nil {
		return nil
	}
	result := make([]models.Content, len(h))
	copy(result, h)
	return result
}

// SendMessage sends a user turn and records the exchange.
// History only grows when the model answers, so it always mirrors what was shown.
func (s *ChatSession) SendMessage(ctx context.Context, text string) (*models.ModelOutput, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apierrors.ErrEmptyPrompt
	}
	if s.client == nil {
		return nil, apierrors.ErrSessionNotStarted
	}

	userTurn := models.NewTextContent(models.RoleUser, text)

	s.mu.RLock()
	contents := append(copyHistory(s.history), userTurn)
	opts := &GenerateOptions{
		Model:             s.model,
		SystemInstruction: s.systemInstruction,
	}
	s.mu.RUnlock()

	output, err := s.client.GenerateContent(ctx, contents, opts)
	if err != nil {
		s.logger.Warn("message failed", zap.Error(err), zap.Int("history", len(contents)-1))
		return nil, err
	}

	s.mu.Lock()
	s.history = append(s.history, userTurn, output.AsContent())
	s.lastOutput = output
	turns := len(s.history)
	s.mu.Unlock()

	s.logger.Info("message answered",
		zap.Int("history", turns),
		zap.Int("reply_chars", len(output.Text())),
		zap.String("finish_reason", output.FinishReason()))
	return output, nil
}

// ID returns the session identifier used in logs
func (s *ChatSession) ID() string {
	return s.id
}

// History returns a copy of the recorded turns
func (s *ChatSession) History() []models.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyHistory(s.history)
}

// SystemInstruction returns the session's system instruction
func (s *ChatSession) SystemInstruction() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.systemInstruction
}

// GetModel returns the session's model
func (s *ChatSession) GetModel() models.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetModel changes the session's model
func (s *ChatSession) SetModel(model models.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !model.IsUnspecified() {
		s.model = model
	}
}

// LastOutput returns the last response from the session
func (s *ChatSession) LastOutput() *models.ModelOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastOutput
}
