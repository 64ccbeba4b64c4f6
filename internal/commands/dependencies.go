package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/spielberg/internal/api"
	"github.com/diogo/spielberg/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(deps tui.Deps) error
}

// ClientFactory builds a Gemini client for an API key
type ClientFactory func(apiKey string, opts ...api.ClientOption) (api.GeminiClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient creates the Gemini API client.
	NewClient ClientFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether stdin is interactive; when it is not,
	// ask reads its prompt from it.
	StdinIsTerminal func() bool
	// StderrIsTerminal gates the progress spinner
	StderrIsTerminal func() bool
	// TerminalWidth returns the stdout width, or 0 when unknown
	TerminalWidth func() int

	CopyToClipboard func(string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(deps tui.Deps) error {
	return tui.RunChat(deps)
}

func newGeminiClient(apiKey string, opts ...api.ClientOption) (api.GeminiClientInterface, error) {
	client, err := api.NewClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:        newGeminiClient,
		TUI:              &DefaultTUI{},
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		StdinIsTerminal:  func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		StderrIsTerminal: func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
		TerminalWidth:    getTerminalWidth,
		CopyToClipboard:  clipboard.WriteAll,
	}
}

// getTerminalWidth returns the terminal width or 0
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
