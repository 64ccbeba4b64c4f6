package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/spielberg/internal/config"
	"github.com/diogo/spielberg/internal/models"
	"github.com/diogo/spielberg/internal/render"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Mostra a configuração efetiva",
		Long: `Mostra a configuração efetiva (arquivo + padrões) em JSON.

O arquivo fica em ~/.spielberg/config.json; use 'spielberg config init' para criá-lo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(deps.Stdout, string(data))
			return nil
		},
	}

	cmd.AddCommand(newConfigPathCmd(deps))
	cmd.AddCommand(newConfigThemesCmd(deps))
	cmd.AddCommand(newConfigModelsCmd(deps))
	cmd.AddCommand(newConfigInitCmd(deps))

	return cmd
}

func newConfigPathCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Imprime o caminho do arquivo de configuração",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	}
}

func newConfigThemesCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "Lista os temas da janela e os estilos de markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := config.LoadConfig()
			dim := lipgloss.NewStyle().Foreground(colorTextDim)

			fmt.Fprintln(deps.Stdout, answerLabelStyle.Render("Temas da janela (tui_theme / --theme)"))
			for _, theme := range render.AvailableTUIThemes() {
				swatch := lipgloss.NewStyle().Foreground(theme.Primary).Render("■") +
					lipgloss.NewStyle().Foreground(theme.Secondary).Render("■") +
					lipgloss.NewStyle().Foreground(theme.Error).Render("■")
				fmt.Fprintf(deps.Stdout, "%s %s %-12s %s\n",
					activeMark(theme.Name == cfg.TUITheme), swatch, theme.Name, dim.Render(theme.Description))
			}

			fmt.Fprintln(deps.Stdout)
			fmt.Fprintln(deps.Stdout, answerLabelStyle.Render("Estilos de markdown (markdown.style / GLAMOUR_STYLE)"))
			for _, theme := range render.AvailableThemes() {
				fmt.Fprintf(deps.Stdout, "%s %-12s %s\n",
					activeMark(theme.Name == cfg.Markdown.Style), theme.Name, dim.Render(theme.Description))
			}
			return nil
		},
	}
}

func newConfigModelsCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Lista os modelos conhecidos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := config.LoadConfig()
			for _, m := range models.AllModels() {
				fmt.Fprintf(deps.Stdout, "%s %-24s %s\n", activeMark(m.Name == cfg.DefaultModel), m.Name, m.Label())
			}
			return nil
		},
	}
}

func newConfigInitCmd(deps *Dependencies) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Cria o arquivo de configuração com os valores padrão",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Configuração criada em "+path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func activeMark(active bool) string {
	if active {
		return lipgloss.NewStyle().Foreground(colorGold).Render("●")
	}
	return " "
}
