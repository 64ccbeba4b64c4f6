package commands

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/spielberg/internal/api"
	"github.com/diogo/spielberg/internal/config"
	apierrors "github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/models"
	"github.com/diogo/spielberg/internal/render"
	"github.com/diogo/spielberg/internal/tui"
)

// fakeTUI records the deps the chat window would have been opened with
type fakeTUI struct {
	called bool
	deps   tui.Deps
	err    error
}

func (f *fakeTUI) RunChat(deps tui.Deps) error {
	f.called = true
	f.deps = deps
	return f.err
}

type testEnv struct {
	deps      *Dependencies
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	ui        *fakeTUI
	home      string
	clientErr error
	keys      []string
	clientOps []api.ClientOption
	copied    []string
}

// newTestEnv isolates HOME, sets a fake API key and wires client to every command
func newTestEnv(t *testing.T, client *api.MockGeminiClient) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.APIKeyEnv, "test-key")
	t.Setenv(config.LogLevelEnv, "")
	t.Setenv("GLAMOUR_STYLE", "notty")
	t.Cleanup(func() {
		render.SetTUITheme(render.DefaultTUIThemeName)
		tui.UpdateTheme()
	})

	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		ui:     &fakeTUI{},
		home:   home,
	}
	env.deps = &Dependencies{
		NewClient: func(apiKey string, opts ...api.ClientOption) (api.GeminiClientInterface, error) {
			env.keys = append(env.keys, apiKey)
			env.clientOps = opts
			if env.clientErr != nil {
				return nil, env.clientErr
			}
			return client, nil
		},
		TUI:              env.ui,
		Stdin:            strings.NewReader(""),
		Stdout:           env.stdout,
		Stderr:           env.stderr,
		StdinIsTerminal:  func() bool { return true },
		StderrIsTerminal: func() bool { return false },
		TerminalWidth:    func() int { return 100 },
		CopyToClipboard: func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		},
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	return run(context.Background(), e.deps, args)
}

func writeBanner(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 0xFF, G: 0xD7, A: 0xFF})
		}
	}
	path := filepath.Join(t.TempDir(), "banner.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand_Metadata(t *testing.T) {
	cmd := NewRootCmd(nil)
	if cmd.Use != "spielberg" {
		t.Errorf("Use = %s, want spielberg", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	for _, name := range []string{"model", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
	for _, name := range []string{"theme", "banner", "version"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
	if f := cmd.PersistentFlags().ShorthandLookup("m"); f == nil || f.Name != "model" {
		t.Error("-m should be --model")
	}
	if f := cmd.PersistentFlags().ShorthandLookup("v"); f == nil || f.Name != "verbose" {
		t.Error("-v should be --verbose")
	}

	subs := map[string]bool{}
	for _, c := range cmd.Commands() {
		subs[c.Name()] = true
	}
	for _, name := range []string{"ask", "config"} {
		if !subs[name] {
			t.Errorf("missing subcommand %s", name)
		}
	}
}

func TestRun_Version(t *testing.T) {
	env := newTestEnv(t, api.NewMockReply("x"))

	if err := env.run("--version"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "spielberg "+Version) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	if env.ui.called {
		t.Error("--version should not open the chat window")
	}
}

func TestRun_RejectsArguments(t *testing.T) {
	env := newTestEnv(t, api.NewMockReply("x"))
	if err := env.run("hello"); err == nil {
		t.Error("expected an error for a stray argument")
	}
	if env.ui.called {
		t.Error("chat window should not open")
	}
}

func TestRun_StartsChat(t *testing.T) {
	client := api.NewMockReply("x")
	env := newTestEnv(t, client)
	bannerPath := writeBanner(t)

	if err := env.run("--banner", bannerPath); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !env.ui.called {
		t.Fatal("chat window was not opened")
	}

	d := env.ui.deps
	if d.StartErr != nil {
		t.Errorf("StartErr = %v", d.StartErr)
	}
	session, ok := d.Session.(*api.ChatSession)
	if !ok || session == nil {
		t.Fatalf("Session = %T, want *api.ChatSession", d.Session)
	}
	history := session.History()
	if len(history) != 2 || history[0].Role != models.RoleUser || history[1].Role != models.RoleModel {
		t.Errorf("persona seed = %+v", history)
	}
	if session.SystemInstruction() != config.DefaultPersona().SystemPrompt {
		t.Error("system instruction should be the persona prompt")
	}

	if d.Banner == nil || d.BannerErr != nil {
		t.Errorf("banner = %v, err = %v", d.Banner, d.BannerErr)
	}
	if d.BannerPath != bannerPath {
		t.Errorf("BannerPath = %s", d.BannerPath)
	}
	if d.Markdown.Style != "notty" {
		t.Errorf("Markdown.Style = %s, want GLAMOUR_STYLE override", d.Markdown.Style)
	}
	if d.Persona.Name != "Spielberg IA" {
		t.Errorf("Persona = %s", d.Persona.Name)
	}
	if d.Logger == nil || d.CopyToClipboard == nil {
		t.Error("logger and clipboard should be wired")
	}

	if len(env.keys) != 1 || env.keys[0] != "test-key" {
		t.Errorf("client built with keys %v", env.keys)
	}
	if !client.CloseCalled {
		t.Error("client should be closed when the window exits")
	}
	if env.stderr.Len() != 0 {
		t.Errorf("unexpected warnings: %s", env.stderr.String())
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	env := newTestEnv(t, api.NewMockReply("x"))
	t.Setenv(config.APIKeyEnv, "")

	if err := env.run("--banner", writeBanner(t)); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !env.ui.called {
		t.Fatal("the window should still open without a key")
	}
	if env.ui.deps.Session != nil {
		t.Error("Session should be nil without a key")
	}
	if !apierrors.IsConfigError(env.ui.deps.StartErr) {
		t.Errorf("StartErr = %v, want config error", env.ui.deps.StartErr)
	}
	if len(env.keys) != 0 {
		t.Error("no client should be built without a key")
	}
	if !strings.Contains(env.stderr.String(), "GEMINI_API_KEY não configurada") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRun_ClientFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.clientErr = errors.New("tls handshake")

	if err := env.run("--banner", writeBanner(t)); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if env.ui.deps.StartErr == nil || !strings.Contains(env.ui.deps.StartErr.Error(), "tls handshake") {
		t.Errorf("StartErr = %v", env.ui.deps.StartErr)
	}
	if !strings.Contains(env.stderr.String(), "Falha ao iniciar o chat") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRun_MissingBanner(t *testing.T) {
	env := newTestEnv(t, api.NewMockReply("x"))
	missing := filepath.Join(t.TempDir(), "nope.jpg")

	if err := env.run("--banner", missing); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if env.ui.deps.Banner != nil {
		t.Error("Banner should be nil")
	}
	if !errors.Is(env.ui.deps.BannerErr, os.ErrNotExist) {
		t.Errorf("BannerErr = %v", env.ui.deps.BannerErr)
	}
	if !strings.Contains(env.stderr.String(), "não encontrado") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
	if env.ui.deps.Session == nil {
		t.Error("a missing banner must not disable the chat")
	}
}

func TestRun_Theme(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		want     string
		wantWarn bool
	}{
		{"builtin", "dracula", "dracula", false},
		{"unknown falls back", "technicolor", render.DefaultTUIThemeName, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, api.NewMockReply("x"))
			if err := env.run("--theme", tt.theme, "--banner", writeBanner(t)); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if got := render.GetTUITheme().Name; got != tt.want {
				t.Errorf("theme = %s, want %s", got, tt.want)
			}
			if warned := strings.Contains(env.stderr.String(), "desconhecido"); warned != tt.wantWarn {
				t.Errorf("warning = %v, want %v (%q)", warned, tt.wantWarn, env.stderr.String())
			}
		})
	}
}

func TestRun_Model(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"default", nil, models.DefaultModel.Name, false},
		{"flag", []string{"-m", "gemini-2.5-pro"}, "gemini-2.5-pro", false},
		{"unknown", []string{"--model", "gpt-4"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, api.NewMockReply("x"))
			args := append([]string{"--banner", writeBanner(t)}, tt.args...)

			err := env.run(args...)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "unknown model") {
					t.Errorf("run() error = %v, want unknown model", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}

			if got := clientModel(t, env.clientOps); got != tt.want {
				t.Errorf("client model = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRun_ConfigFileOverrides(t *testing.T) {
	env := newTestEnv(t, api.NewMockReply("x"))
	cfg := config.DefaultConfig()
	cfg.DefaultModel = "gemini-2.5-flash"
	cfg.BannerPath = writeBanner(t)
	cfg.RequestTimeout = 7
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}

	if err := env.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if env.ui.deps.BannerPath != cfg.BannerPath {
		t.Errorf("BannerPath = %s", env.ui.deps.BannerPath)
	}
	if env.ui.deps.Timeout.Seconds() != 7 {
		t.Errorf("Timeout = %v", env.ui.deps.Timeout)
	}
	if got := clientModel(t, env.clientOps); got != "gemini-2.5-flash" {
		t.Errorf("client model = %s", got)
	}
}

// clientModel applies opts to a real client and reports the model it ends up with
func clientModel(t *testing.T, opts []api.ClientOption) string {
	t.Helper()
	probe, err := api.NewClient("k", opts...)
	if err != nil {
		t.Fatal(err)
	}
	defer probe.Close()
	return probe.GetModel().Name
}

func TestResolveModel(t *testing.T) {
	m, err := resolveModel("")
	if err != nil || m != models.DefaultModel {
		t.Errorf("resolveModel(\"\") = %v, %v", m, err)
	}
	m, err = resolveModel("models/gemini-2.5-pro")
	if err != nil || m.Name != "gemini-2.5-pro" {
		t.Errorf("resolveModel(prefixed) = %v, %v", m, err)
	}
	if _, err := resolveModel("claude"); err == nil {
		t.Error("expected error for a non-Gemini model")
	}
}
