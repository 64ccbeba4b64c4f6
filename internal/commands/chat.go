package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/diogo/spielberg/internal/api"
	"github.com/diogo/spielberg/internal/banner"
	"github.com/diogo/spielberg/internal/config"
	apierrors "github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/models"
	"github.com/diogo/spielberg/internal/render"
	"github.com/diogo/spielberg/internal/tui"
)

const warningRule = "******************************************************************************"

// runChat prepares the session, banner and theme, then hands over to the chat window.
// Nothing here is fatal: a missing key or banner is reported on stderr and the
// window opens anyway, showing the problem inline.
func runChat(deps *Dependencies, opts *rootOptions) error {
	cfg := loadSettings(opts, deps.Stderr)
	logger := newLogger(cfg, deps.Stderr)
	defer func() { _ = logger.Sync() }()

	if !render.SetTUITheme(cfg.TUITheme) {
		fmt.Fprintln(deps.Stderr, warnStyle.Render(fmt.Sprintf(
			"Aviso: tema '%s' desconhecido, usando '%s'", cfg.TUITheme, render.DefaultTUIThemeName)))
		render.SetTUITheme(render.DefaultTUIThemeName)
	}
	tui.UpdateTheme()

	model, err := resolveModel(cfg.DefaultModel)
	if err != nil {
		return err
	}

	persona := config.DefaultPersona()
	chatDeps := tui.Deps{
		Persona:         persona,
		BannerPath:      cfg.BannerPath,
		BannerWidth:     cfg.BannerWidth,
		Markdown:        render.FromMarkdownConfig(cfg.Markdown),
		Timeout:         cfg.Timeout(),
		Logger:          logger,
		CopyToClipboard: deps.CopyToClipboard,
	}

	chatDeps.Banner, chatDeps.BannerErr = banner.Load(cfg.BannerPath, cfg.BannerWidth)
	if chatDeps.BannerErr != nil {
		warnBanner(deps.Stderr, cfg.BannerPath, chatDeps.BannerErr)
		logger.Warn("banner unavailable", zap.String("path", cfg.BannerPath), zap.Error(chatDeps.BannerErr))
	}

	client, err := startClient(deps, cfg, model, logger)
	if err != nil {
		warnStartup(deps.Stderr, err)
		logger.Warn("chat disabled", zap.Error(err))
		chatDeps.StartErr = err
	} else {
		defer client.Close()
		session := api.StartPersonaChat(client, persona.SystemPrompt, persona.Greeting)
		chatDeps.Session = session
		logger.Info("chat started",
			zap.String("session", session.ID()),
			zap.String("model", model.Name))
	}

	return deps.TUI.RunChat(chatDeps)
}

// startClient looks up the API key and builds a client for model
func startClient(deps *Dependencies, cfg config.Config, model models.Model, logger *zap.Logger) (api.GeminiClientInterface, error) {
	key, err := config.LookupAPIKey()
	if err != nil {
		return nil, err
	}
	client, err := deps.NewClient(key,
		api.WithModel(model),
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func warnStartup(w io.Writer, err error) {
	if !apierrors.IsConfigError(err) {
		fmt.Fprintln(w, formatErrorMessage(err, "Falha ao iniciar o chat"))
		return
	}
	fmt.Fprintln(w, warnStyle.Render(strings.Join([]string{
		warningRule,
		"ATENÇÃO: Variável de ambiente " + config.APIKeyEnv + " não configurada!",
		"Por favor, defina esta variável com sua chave da API do Gemini.",
		"O aplicativo pode não funcionar corretamente.",
		warningRule,
	}, "\n")))
}

func warnBanner(w io.Writer, path string, err error) {
	if !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Aviso: não foi possível carregar o banner '%s': %v", path, err)))
		return
	}
	fmt.Fprintln(w, warnStyle.Render(strings.Join([]string{
		fmt.Sprintf("ATENÇÃO: Arquivo de imagem '%s' não encontrado!", path),
		"Coloque a imagem no diretório atual ou use --banner / banner_path.",
		"O banner não será exibido.",
	}, "\n")))
}
