package models

// Part is a single piece of a turn. Only text parts are produced by this client.
type Part struct {
	Text string `json:"text"`
}

// Content is one conversation turn in the wire format of generateContent
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// NewTextContent builds a single-part text turn
func NewTextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// Text concatenates the text of all parts
func (c Content) Text() string {
	if len(c.Parts) == 1 {
		return c.Parts[0].Text
	}
	var out string
	for _, p := range c.Parts {
		out += p.Text
	}
	return out
}

// GenerationConfig mirrors the subset of generationConfig the client sets
type GenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

// GenerateRequest is the request body of models/{model}:generateContent
type GenerateRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}
