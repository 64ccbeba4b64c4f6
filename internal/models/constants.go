// Package models contains data types and constants for the Gemini API.
package models

import "strings"

// Endpoints for the Gemini API
const (
	EndpointBase = "https://generativelanguage.googleapis.com/v1beta"

	// HeaderAPIKey carries the API key; keeping it out of the URL keeps it out of logs
	HeaderAPIKey = "x-goog-api-key"
)

// Roles used in conversation contents
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Finish reasons reported by the API
const (
	FinishStop       = "STOP"
	FinishMaxTokens  = "MAX_TOKENS"
	FinishSafety     = "SAFETY"
	FinishRecitation = "RECITATION"
	FinishOther      = "OTHER"
)

// Model describes a Gemini model and the generation defaults used with it
type Model struct {
	Name        string
	DisplayName string
	// MaxOutputTokens of 0 leaves the server default in place
	MaxOutputTokens int
}

// Available models
var (
	// ModelUnspecified falls back to the client's default model
	ModelUnspecified = Model{Name: "unspecified"}

	Model20Flash = Model{
		Name:        "gemini-2.0-flash",
		DisplayName: "Gemini 2.0 Flash",
	}

	Model20FlashLite = Model{
		Name:        "gemini-2.0-flash-lite",
		DisplayName: "Gemini 2.0 Flash-Lite",
	}

	Model25Flash = Model{
		Name:        "gemini-2.5-flash",
		DisplayName: "Gemini 2.5 Flash",
	}

	Model25Pro = Model{
		Name:        "gemini-2.5-pro",
		DisplayName: "Gemini 2.5 Pro",
	}

	// DefaultModel is the model the concierge was tuned against
	DefaultModel = Model20Flash
)

// AllModels returns a list of all available models
func AllModels() []Model {
	return []Model{Model20Flash, Model20FlashLite, Model25Flash, Model25Pro}
}

// ModelNames returns the API names of all available models
func ModelNames() []string {
	all := AllModels()
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = m.Name
	}
	return names
}

// ModelFromName returns a Model by its name. Unknown names that still look like
// Gemini model ids are passed through so newer models work without a release.
func ModelFromName(name string) Model {
	name = strings.TrimPrefix(strings.TrimSpace(name), "models/")
	for _, m := range AllModels() {
		if m.Name == name {
			return m
		}
	}
	if strings.HasPrefix(name, "gemini-") {
		return Model{Name: name, DisplayName: name}
	}
	return ModelUnspecified
}

// IsUnspecified reports whether m is the zero/unspecified model
func (m Model) IsUnspecified() bool {
	return m.Name == "" || m.Name == ModelUnspecified.Name
}

// Label returns the display name, falling back to the API name
func (m Model) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// DefaultHeaders returns the default headers for Gemini API requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json",
		"Accept-Language": "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
		"User-Agent":      "spielberg/0.1 (+https://ai.google.dev)",
	}
}
