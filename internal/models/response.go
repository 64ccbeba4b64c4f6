package models

import "strings"

// Candidate represents a single response candidate from Gemini
type Candidate struct {
	Text         string
	FinishReason string
	Index        int
}

// UsageMetadata reports token accounting for a request
type UsageMetadata struct {
	PromptTokens     int64
	CandidatesTokens int64
	TotalTokens      int64
}

// ModelOutput represents the complete API response from Gemini
type ModelOutput struct {
	Candidates   []Candidate
	Chosen       int    // Index of selected candidate
	BlockReason  string // promptFeedback.blockReason, empty when not blocked
	ModelVersion string
	Usage        UsageMetadata
}

// Text returns the chosen candidate's text
func (m *ModelOutput) Text() string {
	if c := m.ChosenCandidate(); c != nil {
		return c.Text
	}
	return ""
}

// FinishReason returns the chosen candidate's finish reason
func (m *ModelOutput) FinishReason() string {
	if c := m.ChosenCandidate(); c != nil {
		return c.FinishReason
	}
	return ""
}

// ChosenCandidate returns a pointer to the chosen candidate
func (m *ModelOutput) ChosenCandidate() *Candidate {
	if len(m.Candidates) == 0 {
		return nil
	}
	if m.Chosen < 0 || m.Chosen >= len(m.Candidates) {
		return &m.Candidates[0]
	}
	return &m.Candidates[m.Chosen]
}

// Truncated reports whether the reply stopped before the model finished
func (m *ModelOutput) Truncated() bool {
	return m.FinishReason() == FinishMaxTokens
}

// AsContent converts the chosen reply into a model turn for the chat history
func (m *ModelOutput) AsContent() Content {
	return NewTextContent(RoleModel, strings.TrimRight(m.Text(), "\n"))
}
