// Package commands provides the CLI commands for spielberg.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/spielberg/internal/config"
	"github.com/diogo/spielberg/internal/logging"
	"github.com/diogo/spielberg/internal/models"
)

// Version info (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	model   string
	theme   string
	banner  string
	verbose bool
	version bool
}

// NewRootCmd builds the spielberg command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "spielberg",
		Short: "Spielberg IA, seu concierge cinematográfico no terminal",
		Long: `spielberg abre uma janela de chat com o Spielberg IA, um concierge de filmes
e séries que responde através da API do Gemini.

A chave da API é lida da variável de ambiente GEMINI_API_KEY.

Examples:
  spielberg                                  Abre a janela de chat
  spielberg --theme dracula                  Usa outro tema
  spielberg ask "Um filme para chorar?"      Pergunta única
  cat ideia.txt | spielberg ask              Lê a pergunta da entrada padrão
  spielberg config themes                    Lista os temas`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(deps.Stdout, "spielberg %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(deps, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.model, "model", "m", "",
		fmt.Sprintf("Model to use (default %s)", models.DefaultModel.Name))
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TUI theme (see 'spielberg config themes')")
	cmd.Flags().StringVar(&opts.banner, "banner", "", "Banner image path")
	cmd.Flags().BoolVar(&opts.version, "version", false, "Show version and exit")

	cmd.AddCommand(NewAskCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute(ctx context.Context) {
	deps := NewDependencies()
	if err := run(ctx, deps, os.Args[1:]); err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Erro"))
		os.Exit(1)
	}
}

func run(ctx context.Context, deps *Dependencies, args []string) error {
	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	return cmd.ExecuteContext(ctx)
}

// loadSettings reads the config file and applies flag overrides.
// A broken config file is reported and replaced by the defaults.
func loadSettings(opts *rootOptions, stderr io.Writer) config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, warnStyle.Render(fmt.Sprintf("Aviso: %v (usando configuração padrão)", err)))
	}
	if opts == nil {
		return cfg
	}
	if opts.model != "" {
		cfg.DefaultModel = opts.model
	}
	if opts.theme != "" {
		cfg.TUITheme = opts.theme
	}
	if opts.banner != "" {
		cfg.BannerPath = opts.banner
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	return cfg
}

// resolveModel maps the configured model name, rejecting names that are not Gemini models
func resolveModel(name string) (models.Model, error) {
	if name == "" {
		return models.DefaultModel, nil
	}
	model := models.ModelFromName(name)
	if model.IsUnspecified() {
		return models.Model{}, fmt.Errorf("unknown model %q (available: %v)", name, models.ModelNames())
	}
	return model, nil
}

// newLogger opens the log file, falling back to a no-op logger
func newLogger(cfg config.Config, stderr io.Writer) *zap.Logger {
	logger, err := logging.New(logging.Options{
		File:    cfg.LogFile,
		Verbose: cfg.Verbose,
		Level:   os.Getenv(config.LogLevelEnv),
	})
	if err != nil {
		fmt.Fprintln(stderr, warnStyle.Render(fmt.Sprintf("Aviso: log desativado: %v", err)))
		return logging.Nop()
	}
	return logger
}
