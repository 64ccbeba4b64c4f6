package api

import "github.com/diogo/spielberg/internal/models"

// StartPersonaChat opens a session primed with a persona. The prompt is sent both
// as the system instruction and as the opening user turn, answered by greeting,
// so the model has already "spoken" the greeting the window shows.
func StartPersonaChat(client GeminiClientInterface, prompt, greeting string, opts ...ChatOption) *ChatSession {
	seed := []ChatOption{
		WithSystemInstruction(prompt),
		WithHistory([]models.Content{
			models.NewTextContent(models.RoleUser, prompt),
			models.NewTextContent(models.RoleModel, greeting),
		}),
	}
	return client.StartChat(append(seed, opts...)...)
}
