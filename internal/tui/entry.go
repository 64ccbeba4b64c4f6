package tui

import "strings"

// EntryKind tells how an entry in the chat log is drawn
type EntryKind int

const (
	// EntryUser is a message typed by the user
	EntryUser EntryKind = iota
	// EntryModel is a reply from the assistant
	EntryModel
	// EntryThinking is the placeholder shown while a request is in flight
	EntryThinking
	// EntryError is a failed request, shown in the assistant's voice
	EntryError
	// EntrySystem is a setup problem reported by the application itself
	EntrySystem
)

func (k EntryKind) String() string {
	switch k {
	case EntryUser:
		return "user"
	case EntryModel:
		return "model"
	case EntryThinking:
		return "thinking"
	case EntryError:
		return "error"
	case EntrySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Entry is one message in the chat log: a sender label followed by a body
type Entry struct {
	Kind   EntryKind
	Sender string
	Text   string

	// cached render of the body
	rendered      string
	renderedWidth int
}

// IsError reports whether the entry is drawn in the error colour
func (e Entry) IsError() bool {
	return e.Kind == EntryError || e.Kind == EntrySystem
}

// splitEmphasis separates a leading "*...*" span from the rest of text.
// "*Corta!* detalhes" yields ("Corta!", " detalhes").
func splitEmphasis(text string) (lead, rest string) {
	if !strings.HasPrefix(text, "*") {
		return "", text
	}
	end := strings.Index(text[1:], "*")
	if end < 0 {
		return "", text
	}
	return text[1 : end+1], text[end+2:]
}
