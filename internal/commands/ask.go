package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/spielberg/internal/api"
	"github.com/diogo/spielberg/internal/config"
	apierrors "github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/render"
	"github.com/diogo/spielberg/internal/tui"
)

var (
	colorGold = lipgloss.Color("#FFD700")

	answerLabelStyle = lipgloss.NewStyle().
				Foreground(colorGold).
				Bold(true)

	answerBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorGold).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)
)

type askOptions struct {
	file      string
	output    string
	raw       bool
	copy      bool
	noPersona bool
}

// NewAskCmd creates the one-shot question command
func NewAskCmd(deps *Dependencies, root *rootOptions) *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Faz uma pergunta única ao Spielberg IA",
		Long: `Envia uma única pergunta ao Spielberg IA e imprime a resposta.

A pergunta vem do argumento, de um arquivo (-f) ou da entrada padrão quando ela
não é um terminal. A resposta é renderizada como markdown, ou impressa crua com --raw.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(deps, opts.file, args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(prompt) == "" {
				return cmd.Help()
			}
			return runAsk(cmd.Context(), deps, root, opts, prompt)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save response to file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the raw response without decoration")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the response to the clipboard")
	cmd.Flags().BoolVar(&opts.noPersona, "no-persona", false, "Ask the model directly, without the Spielberg IA persona")

	return cmd
}

// readPrompt picks the prompt source: file, then arguments, then piped stdin
func readPrompt(deps *Dependencies, file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if deps.StdinIsTerminal != nil && !deps.StdinIsTerminal() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", nil
}

func runAsk(ctx context.Context, deps *Dependencies, root *rootOptions, opts *askOptions, prompt string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadSettings(root, deps.Stderr)
	logger := newLogger(cfg, deps.Stderr)
	defer func() { _ = logger.Sync() }()

	model, err := resolveModel(cfg.DefaultModel)
	if err != nil {
		return err
	}

	client, err := startClient(deps, cfg, model, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	persona := config.DefaultPersona()
	var session *api.ChatSession
	if opts.noPersona {
		session = client.StartChat()
	} else {
		session = api.StartPersonaChat(client, persona.SystemPrompt, persona.Greeting)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	decorated := !opts.raw
	var spin *spinner
	if decorated && deps.StderrIsTerminal != nil && deps.StderrIsTerminal() {
		spin = newSpinner(deps.Stderr, strings.Trim(persona.ThinkingText, "*"))
		spin.start()
	}

	startTime := time.Now()
	output, err := session.SendMessage(ctx, prompt)
	elapsed := time.Since(startTime)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		logger.Error("ask failed",
			zap.String("session", session.ID()),
			zap.String("model", model.Name),
			zap.Int("status", apierrors.GetHTTPStatus(err)),
			zap.Error(err))
		return fmt.Errorf("generation failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess("Corta! Cena pronta.")
	}
	logger.Info("ask answered",
		zap.String("session", session.ID()),
		zap.String("model", model.Name),
		zap.String("finish_reason", output.FinishReason()),
		zap.Duration("elapsed", elapsed))

	text := output.Text()

	if opts.copy || cfg.CopyToClipboard {
		copyAnswer(deps, text, decorated)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Resposta salva em %s", opts.output)))
		}
		return nil
	}

	if !decorated {
		fmt.Fprint(deps.Stdout, text)
		return nil
	}

	printAnswer(deps, persona.Name, text)
	if output.Truncated() {
		fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorTextDim).Render(
			"(resposta interrompida pelo limite de tokens do modelo)"))
	}
	return nil
}

func copyAnswer(deps *Dependencies, text string, decorated bool) {
	if deps.CopyToClipboard == nil {
		return
	}
	err := deps.CopyToClipboard(text)
	if !decorated {
		return
	}
	if err != nil {
		fmt.Fprintln(deps.Stderr, warnStyle.Render(fmt.Sprintf("⚠ Falha ao copiar para a área de transferência: %v", err)))
		return
	}
	fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copiado para a área de transferência"))
}

// printAnswer renders text as markdown inside a bordered box sized to the terminal
func printAnswer(deps *Dependencies, name, text string) {
	termWidth := 0
	if deps.TerminalWidth != nil {
		termWidth = deps.TerminalWidth()
	}
	if termWidth <= 0 {
		termWidth = 80
	}
	bubbleWidth := min(max(termWidth-4, 40), 120)
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(deps.Stdout, answerLabelStyle.Render("🎬 "+name))

	rendered, err := render.Markdown(text, render.LoadOptionsFromConfigWithWidth(contentWidth))
	if err != nil {
		rendered = text
	}
	rendered = strings.TrimRight(rendered, "\n")

	fmt.Fprintln(deps.Stdout, answerBubbleStyle.Width(bubbleWidth).Render(rendered))
}

// formatErrorMessage formats an error with the context it happened in and, when
// the API returned one, the raw error body
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(tui.FormatError(fmt.Errorf("%s: %w", context, err)))

	if body := apierrors.GetResponseBody(err); body != "" {
		dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)
		sb.WriteString(dimStyle.Render("\n\n  " + strings.ReplaceAll(body, "\n", "\n  ")))
	}

	return sb.String()
}
