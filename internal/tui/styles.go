// Package tui provides the terminal user interface for spielberg.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/render"
)

// Color variables (updated from theme)
var (
	// Base colors
	colorBackground lipgloss.Color
	colorSurface    lipgloss.Color
	colorBorder     lipgloss.Color

	// Accent colors
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorError     lipgloss.Color

	// Text colors
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Header
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	subtitleStyle    lipgloss.Style
	placeholderStyle lipgloss.Style

	// Chat log panel
	messagesAreaStyle lipgloss.Style

	// Sender labels and bodies
	userLabelStyle  lipgloss.Style
	userTextStyle   lipgloss.Style
	modelLabelStyle lipgloss.Style
	modelTextStyle  lipgloss.Style
	errorTextStyle  lipgloss.Style
	thinkingStyle   lipgloss.Style

	// Input area
	inputPanelStyle  lipgloss.Style
	inputLabelStyle  lipgloss.Style
	sendButtonStyle  lipgloss.Style
	disabledBtnStyle lipgloss.Style

	// Loading/spinner style
	loadingStyle lipgloss.Style

	// Status bar styles
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBackground = theme.Background
	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		Background(colorBackground).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	// italic, like a film credit
	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Italic(true)

	placeholderStyle = lipgloss.NewStyle().
		Foreground(colorError)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Background(colorSurface).
		Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	userTextStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	modelLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	modelTextStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Italic(true)

	errorTextStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Italic(true)

	thinkingStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	sendButtonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(true).
		Padding(0, 2)

	disabledBtnStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Background(colorTextMute).
		Padding(0, 2)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Italic(true)
}

// FormatError returns a styled error message with a hint for the common cases.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if hint := errorHint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Dica: " + hint))
	}

	return sb.String()
}

// errorHint suggests what the user can do about err
func errorHint(err error) string {
	switch {
	case errors.IsConfigError(err):
		return "defina a variável de ambiente GEMINI_API_KEY com sua chave da API do Gemini"
	case errors.IsAuthError(err):
		return "a chave da API foi recusada, confira GEMINI_API_KEY"
	case errors.IsRateLimitError(err):
		return "limite de uso atingido, tente novamente mais tarde ou use outro modelo"
	case errors.IsTimeoutError(err):
		return "a requisição demorou demais, tente novamente"
	case errors.IsNetworkError(err):
		return "verifique sua conexão com a internet"
	case errors.IsBlockedError(err):
		return "a resposta foi bloqueada pelos filtros de segurança, reformule a pergunta"
	default:
		return ""
	}
}

// PrintError prints a styled error message to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
