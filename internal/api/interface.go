package api

import (
	"context"

	"github.com/diogo/spielberg/internal/models"
)

// GeminiClientInterface is the surface of GeminiClient used by the UI and commands
type GeminiClientInterface interface {
	GenerateContent(ctx context.Context, contents []models.Content, opts *GenerateOptions) (*models.ModelOutput, error)
	StartChat(opts ...ChatOption) *ChatSession
	GetModel() models.Model
	SetModel(model models.Model)
	IsClosed() bool
	Close()
}

// contentGenerator is what a ChatSession needs from its client
type contentGenerator interface {
	GenerateContent(ctx context.Context, contents []models.Content, opts *GenerateOptions) (*models.ModelOutput, error)
}

var _ GeminiClientInterface = (*GeminiClient)(nil)
