package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/spielberg/internal/api"
	"github.com/diogo/spielberg/internal/banner"
	"github.com/diogo/spielberg/internal/config"
	apierrors "github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/models"
	"github.com/diogo/spielberg/internal/render"
)

// Message types for the TUI
type (
	responseMsg struct {
		output *models.ModelOutput
	}
	errMsg struct {
		err error
	}
)

// ChatSessionInterface defines the chat session operations needed by the TUI
type ChatSessionInterface interface {
	SendMessage(ctx context.Context, text string) (*models.ModelOutput, error)
	GetModel() models.Model
	ID() string
}

var _ ChatSessionInterface = (*api.ChatSession)(nil)

// Deps holds everything the chat window needs. Session is nil when the chat
// could not be started, and StartErr says why.
type Deps struct {
	Session  ChatSessionInterface
	StartErr error
	Persona  config.Persona

	Banner      *banner.Banner
	BannerPath  string
	BannerErr   error
	BannerWidth int

	Markdown render.Options
	Timeout  time.Duration
	Logger   *zap.Logger

	// CopyToClipboard defaults to the system clipboard
	CopyToClipboard func(string) error
}

// Model represents the TUI state
type Model struct {
	session ChatSessionInterface
	persona config.Persona
	logger  *zap.Logger
	timeout time.Duration
	copyFn  func(string) error
	mdOpts  render.Options

	banner      *banner.Banner
	bannerPath  string
	bannerErr   error
	bannerWidth int

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	entries      []Entry
	chatEnabled  bool
	disabledText string
	loading      bool
	ready        bool
	cancel       context.CancelFunc
	notice       string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat window. When the session is missing the log
// opens with a system entry explaining why and sending stays disabled.
func NewChatModel(deps Deps) Model {
	persona := deps.Persona
	if persona.Name == "" {
		persona = config.DefaultPersona()
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mdOpts := deps.Markdown
	if mdOpts.Style == "" {
		mdOpts = render.DefaultOptions()
	}

	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}

	copyFn := deps.CopyToClipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	bannerWidth := deps.BannerWidth
	if bannerWidth <= 0 {
		bannerWidth = banner.DefaultWidth
	}

	ta := textarea.New()
	ta.Placeholder = "Qual filme ou série vai estrelar sua noite?"
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	// Enter submits; the input is a single logical line
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = loadingStyle

	m := Model{
		session:     deps.Session,
		persona:     persona,
		logger:      logger.Named("tui"),
		timeout:     timeout,
		copyFn:      copyFn,
		mdOpts:      mdOpts,
		banner:      deps.Banner,
		bannerPath:  deps.BannerPath,
		bannerErr:   deps.BannerErr,
		bannerWidth: bannerWidth,
		textarea:    ta,
		spinner:     s,
	}

	switch {
	case apierrors.IsConfigError(deps.StartErr):
		m.addEntry(EntrySystem, persona.SystemName, persona.MissingKeyText)
		m.disabledText = persona.NotConfiguredText
	case deps.StartErr != nil:
		m.addEntry(EntrySystem, persona.SystemName, persona.InitErrorText+" "+deps.StartErr.Error())
		m.disabledText = persona.NotStartedText
	case deps.Session == nil:
		m.addEntry(EntrySystem, persona.SystemName, persona.NotStartedText)
		m.disabledText = persona.NotStartedText
	default:
		m.chatEnabled = true
		m.addEntry(EntryModel, persona.Name, persona.Greeting)
	}

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		tea.SetWindowTitle(m.persona.Title),
	)
}

// Entries returns a copy of the chat log
func (m Model) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// ChatEnabled reports whether messages can be sent
func (m Model) ChatEnabled() bool {
	return m.chatEnabled
}

// Loading reports whether a request is in flight
func (m Model) Loading() bool {
	return m.loading
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelRequest()
			return m, tea.Quit

		case "esc":
			if m.loading {
				m.cancelRequest()
				m.notice = "Cancelando a cena..."
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+y":
			m.copyLastReply()
			return m, nil

		case "enter":
			m, cmd = m.submit()
			if cmd != nil {
				return m, tea.Batch(cmd, m.spinner.Tick)
			}
			return m, nil
		}

	case responseMsg:
		m.finishRequest()
		m.addEntry(EntryModel, m.persona.Name, msg.output.Text())
		if msg.output.Truncated() {
			m.notice = "A resposta foi cortada no limite de tokens do modelo."
		}
		m.refresh()

	case errMsg:
		m.finishRequest()
		m.logger.Warn("request failed", zap.Error(msg.err))
		m.addEntry(EntryError, m.persona.Name, m.persona.ErrorPrefix+" "+msg.err.Error())
		m.refresh()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.refresh()
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles Enter. It returns the command performing the request, or nil
// when nothing is sent.
func (m Model) submit() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	// Nothing is sent; the reason is repeated in the log
	if !m.chatEnabled {
		m.addEntry(EntrySystem, m.persona.SystemName, m.disabledText)
		m.refresh()
		return m, nil
	}

	m.addEntry(EntryUser, m.persona.UserName, input)
	m.textarea.Reset()
	m.textarea.Blur()
	m.addEntry(EntryThinking, m.persona.Name, m.persona.ThinkingText)
	m.loading = true
	m.notice = ""

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel
	m.refresh()

	return m, sendMessage(ctx, cancel, m.session, input)
}

// sendMessage performs the blocking call off the UI loop and reports back as a message
func sendMessage(ctx context.Context, cancel context.CancelFunc, session ChatSessionInterface, prompt string) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		output, err := session.SendMessage(ctx, prompt)
		if err != nil {
			return errMsg{err: err}
		}
		return responseMsg{output: output}
	}
}

func (m *Model) cancelRequest() {
	if m.cancel != nil {
		m.logger.Info("request cancelled by user")
		m.cancel()
	}
}

// finishRequest removes the thinking entry and hands the input back to the user
func (m *Model) finishRequest() {
	m.loading = false
	m.cancel = nil
	if m.notice == "Cancelando a cena..." {
		m.notice = ""
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Kind == EntryThinking {
			m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
			break
		}
	}
	m.textarea.Focus()
}

func (m *Model) addEntry(kind EntryKind, sender, text string) {
	m.entries = append(m.entries, Entry{Kind: kind, Sender: sender, Text: text})
}

// copyLastReply puts the most recent assistant reply on the clipboard
func (m *Model) copyLastReply() {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Kind != EntryModel {
			continue
		}
		if err := m.copyFn(m.entries[i].Text); err != nil {
			m.logger.Warn("clipboard copy failed", zap.Error(err))
			m.notice = fmt.Sprintf("Não foi possível copiar: %v", err)
			return
		}
		m.notice = "Resposta copiada para a área de transferência."
		return
	}
	m.notice = "Nenhuma resposta para copiar ainda."
}

// resize lays the window out for a new terminal size
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	if m.banner != nil {
		w := m.bannerWidth
		if w > width-2 {
			w = width - 2
		}
		m.banner.Resize(w)
	}

	headerHeight := lipgloss.Height(m.renderHeader())
	inputHeight := 5  // label, two textarea rows, border
	statusHeight := 1 // Status bar
	borders := 2      // messages panel border

	vpHeight := height - headerHeight - inputHeight - statusHeight - borders
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - lipgloss.Width(m.renderSendButton()) - 2)
	m.refresh()
}

// refresh re-renders the chat log and scrolls to the newest entry
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	width := m.viewport.Width - 2
	var content strings.Builder
	for i := range m.entries {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderEntry(&m.entries[i], width))
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// renderEntry draws the sender label and the body of e
func (m *Model) renderEntry(e *Entry, width int) string {
	switch e.Kind {
	case EntryUser:
		return userLabelStyle.Render(e.Sender+":") + "\n" +
			userTextStyle.Width(width).Render(e.Text)

	case EntryModel:
		if e.rendered == "" || e.renderedWidth != width {
			body, err := render.Markdown(e.Text, m.mdOpts.WithWidth(width))
			if err != nil {
				body = modelTextStyle.Width(width).Render(e.Text)
			}
			e.rendered = strings.Trim(body, "\n")
			e.renderedWidth = width
		}
		return modelLabelStyle.Render(e.Sender+":") + "\n" + e.rendered

	case EntryThinking:
		lead, rest := splitEmphasis(e.Text)
		return modelLabelStyle.Render(e.Sender+":") + "\n" +
			m.spinner.View() + " " + thinkingStyle.Render(lead+rest)

	default:
		lead, rest := splitEmphasis(e.Text)
		body := errorTextStyle.Width(width).Render(rest)
		if lead != "" {
			body = errorTextStyle.Bold(true).Render(lead) + errorTextStyle.Render(rest)
			body = lipgloss.NewStyle().Width(width).Render(body)
		}
		return modelLabelStyle.Render(e.Sender+":") + "\n" + body
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Preparando o set...")
	}

	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	sections := []string{
		m.renderHeader(),
		messagesAreaStyle.Width(contentWidth + 2).Render(m.viewport.View()),
		m.renderInput(contentWidth),
		m.renderStatusBar(contentWidth),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader draws the banner, or its placeholder, above the subtitle
func (m Model) renderHeader() string {
	var art string
	switch {
	case m.banner != nil:
		art = m.banner.String()
	case m.bannerErr != nil:
		art = placeholderStyle.Render(banner.Placeholder(m.bannerPath, m.bannerErr))
	default:
		art = titleStyle.Render(m.persona.Title)
	}
	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		art,
		subtitleStyle.Render(m.persona.Subtitle),
	))
}

func (m Model) renderSendButton() string {
	if m.loading || !m.chatEnabled {
		return disabledBtnStyle.Render(m.persona.SendLabel)
	}
	return sendButtonStyle.Render(m.persona.SendLabel)
}

func (m Model) renderInput(width int) string {
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		m.textarea.View(),
		"  ",
		m.renderSendButton(),
	)
	content := lipgloss.JoinVertical(lipgloss.Left,
		inputLabelStyle.Render(m.persona.UserName),
		row,
	)
	return inputPanelStyle.Width(width + 2).Render(content)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	escDesc := "Sair"
	if m.loading {
		escDesc = "Cancelar"
	}
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Enviar"},
		{"Ctrl+Y", "Copiar resposta"},
		{"Esc", escDesc},
		{"↑↓", "Rolar"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	if m.notice != "" {
		bar = noticeStyle.Render(m.notice) + statusDescStyle.Render("  │  ") + bar
	}
	return statusBarStyle.Width(width).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(deps Deps) error {
	p := tea.NewProgram(
		NewChatModel(deps),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
