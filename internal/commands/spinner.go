package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Film-reel palette cycled by the progress spinner
var reelColors = []lipgloss.Color{
	lipgloss.Color("#FFD700"),
	lipgloss.Color("#FFC107"),
	lipgloss.Color("#FF6347"),
	lipgloss.Color("#8B0000"),
	lipgloss.Color("#FF6347"),
	lipgloss.Color("#FFC107"),
}

var (
	colorText     = lipgloss.Color("#E0E0E0")
	colorTextDim  = lipgloss.Color("#8a8a8a")
	colorTextMute = lipgloss.Color("#3a3a3a")
	colorSuccess  = lipgloss.Color("#9ece6a")
)

// spinner draws a one-line progress animation while a request runs
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws a film strip scrolling past the message
func (s *spinner) render() {
	reel := []string{"◐", "◓", "◑", "◒"}
	strip := []string{"▮", "▯"}

	reelChar := lipgloss.NewStyle().
		Foreground(reelColors[s.frame%len(reelColors)]).
		Bold(true).
		Render(reel[s.frame%len(reel)])

	const stripWidth = 12
	var film strings.Builder
	for i := 0; i < stripWidth; i++ {
		style := lipgloss.NewStyle().Foreground(reelColors[(i+s.frame)%len(reelColors)])
		film.WriteString(style.Render(strip[(i+s.frame)%len(strip)]))
	}

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(reelColors[0]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Italic(true).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s %s", reelChar, film.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}
