package env

import (
	"net"
	"path/filepath"
	"strconv"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

const (
	DefaultPort           = 5010
	DefaultRelayPort      = 5011
	DefaultViewportWidth  = 1000
	DefaultViewportHeight = 1000
	DefaultUIWidth        = 420
	DefaultUIHeight       = 950
	DefaultAssistantURL   = "https://openrouter.ai/api/v1"
)

type Config struct {
	Host      string
	Port      int
	RelayPort int
	StateDir  string

	Viewport entity.Viewport
	Surface  entity.SurfaceOptions
	Headless bool

	LogLevel string
	LogDir   string

	PromptTemplate string

	AssistantAPIKey  string
	AssistantModel   string
	AssistantBaseURL string
}

func Load(cfg output.ConfigPort) Config {
	return Config{
		Host:      cfg.GetWithDefault("FIXBRIDGE_HOST", "localhost"),
		Port:      cfg.GetInt("FIXBRIDGE_PORT", DefaultPort),
		RelayPort: cfg.GetInt("FIXBRIDGE_RELAY_PORT", DefaultRelayPort),
		StateDir:  cfg.GetWithDefault("FIXBRIDGE_STATE_DIR", ".fixbridge"),
		Viewport: entity.Viewport{
			Width:  cfg.GetInt("FIXBRIDGE_VIEWPORT_WIDTH", DefaultViewportWidth),
			Height: cfg.GetInt("FIXBRIDGE_VIEWPORT_HEIGHT", DefaultViewportHeight),
		},
		Surface: entity.SurfaceOptions{
			Width:  cfg.GetInt("FIXBRIDGE_UI_WIDTH", DefaultUIWidth),
			Height: cfg.GetInt("FIXBRIDGE_UI_HEIGHT", DefaultUIHeight),
		},
		Headless:         cfg.GetBool("FIXBRIDGE_HEADLESS", false),
		LogLevel:         cfg.GetWithDefault("FIXBRIDGE_LOG_LEVEL", "info"),
		LogDir:           cfg.Get("FIXBRIDGE_LOG_DIR"),
		PromptTemplate:   cfg.Get("FIXBRIDGE_PROMPT_TEMPLATE"),
		AssistantAPIKey:  cfg.Get("ASSISTANT_API_KEY"),
		AssistantModel:   cfg.Get("ASSISTANT_MODEL"),
		AssistantBaseURL: cfg.GetWithDefault("ASSISTANT_BASE_URL", DefaultAssistantURL),
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) RelayAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.RelayPort))
}

func (c Config) EndpointURL() string {
	return "http://" + c.Addr() + "/fix"
}

func (c Config) PositionFile() string {
	return filepath.Join(c.StateDir, "position.json")
}

func (c Config) ElementFile() string {
	return filepath.Join(c.StateDir, "element.json")
}
