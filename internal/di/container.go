package di

import (
	"context"
	"fmt"
	"os"
	"sync"

	"fixbridge/internal/application/port/input"
	"fixbridge/internal/application/port/output"
	"fixbridge/internal/application/service"
	"fixbridge/internal/application/usecase"
	"fixbridge/internal/domain/entity"
	"fixbridge/internal/infrastructure/browser/rod"
	"fixbridge/internal/infrastructure/env"
	"fixbridge/internal/infrastructure/host"
	"fixbridge/internal/infrastructure/llm/openrouter"
	"fixbridge/internal/infrastructure/logger"
	"fixbridge/internal/infrastructure/prompts"
	"fixbridge/internal/infrastructure/storage"
	"fixbridge/internal/infrastructure/userinteraction"
)

type Container struct {
	Config    env.Config
	Logger    output.LoggerPort
	Positions output.PositionStore
	Elements  output.ElementStore
	Recorder  *service.Recorder
	Selection *service.SelectionModel
	Fix       input.FixExecutor
	Console   *userinteraction.ConsoleUserInteraction

	browserMu sync.Mutex
	browser   *rod.BrowserAdapter
}

type Options struct {
	// ConfigFile is an optional YAML file layered beneath the environment.
	ConfigFile string
	Verbose    bool
}

func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	envService := env.NewEnvService()
	var cfgPort output.ConfigPort = envService
	if opts.ConfigFile != "" {
		withFile, err := envService.WithFile(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfgPort = withFile
	}
	cfg := env.Load(cfgPort)
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}

	log, err := logger.NewLoggerAdapter(logger.Config{
		Level:   cfg.LogLevel,
		Dir:     cfg.LogDir,
		Service: "fixbridge",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		log.Warn("State dir unavailable, captures are not shared between commands",
			"dir", cfg.StateDir, "error", err)
	}

	fixCfg, err := loadFixConfig(cfg.PromptTemplate)
	if err != nil {
		log.Close()
		return nil, err
	}

	positions := storage.NewFileSlot[entity.Position](cfg.PositionFile())
	elements := storage.NewElementFile(cfg.ElementFile(), log)

	c := &Container{
		Config:    cfg,
		Logger:    log,
		Positions: positions,
		Elements:  elements,
		Recorder:  service.NewRecorder(nil, positions, cfg.Viewport, log),
		Selection: service.NewSelectionModel(),
		Fix:       usecase.NewFixUseCase(log, fixCfg),
		Console:   userinteraction.NewConsoleUserInteraction(),
	}
	return c, nil
}

// Browser launches the browser on first use.
func (c *Container) Browser(ctx context.Context) (output.BrowserPort, error) {
	c.browserMu.Lock()
	defer c.browserMu.Unlock()

	if c.browser != nil {
		return c.browser, nil
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = c.Config.Headless
	browserCfg.Viewport = c.Config.Viewport

	browser, err := rod.NewBrowserAdapter(ctx, browserCfg, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	c.browser = browser
	return browser, nil
}

// Assistant returns nil when no API key is configured.
func (c *Container) Assistant() output.AssistantPort {
	if c.Config.AssistantAPIKey == "" || c.Config.AssistantModel == "" {
		return nil
	}
	cfg := openrouter.DefaultConfig(c.Config.AssistantAPIKey, c.Config.AssistantModel)
	cfg.BaseURL = c.Config.AssistantBaseURL
	cfg.Logger = c.Logger.WithField("component", "assistant")
	return openrouter.NewOpenRouterAdapter(cfg)
}

func (c *Container) Capturer(browser output.BrowserPort, snapshotDir string) *service.ElementCapturer {
	return service.NewElementCapturer(browser, c.Recorder, c.Elements, c.Logger, service.CaptureConfig{
		SnapshotDir: snapshotDir,
	})
}

// loadFixConfig swaps the built-in prompt template for the file at path.
// An empty path keeps the default.
func loadFixConfig(path string) (usecase.FixConfig, error) {
	fixCfg := usecase.DefaultFixConfig()
	if path == "" {
		return fixCfg, nil
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fixCfg, fmt.Errorf("failed to read prompt template: %w", err)
	}
	tmpl, err := prompts.ParseFixTemplate(string(text))
	if err != nil {
		return fixCfg, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	fixCfg.Template = tmpl
	return fixCfg, nil
}

// NewRelay builds a relay for one connected UI. Captured elements keep the
// shared selection current.
func (c *Container) NewRelay(h output.MessagingHost, teardown func()) *service.Relay {
	return service.NewRelay(service.RelayConfig{
		Host:      h,
		Fallback:  host.NewNoop(c.Logger),
		Selection: c.Selection,
		Teardown:  teardown,
	}, c.Logger)
}

func (c *Container) Close() {
	c.browserMu.Lock()
	if c.browser != nil {
		c.browser.Close()
		c.browser = nil
	}
	c.browserMu.Unlock()

	if c.Logger != nil {
		c.Logger.Close()
	}
}
