package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/juridik/internal/filex"
)

// Token store kinds accepted by Config.TokenStore.
const (
	TokenStoreAuto   = "auto"
	TokenStoreSecure = "secure"
	TokenStoreSQLite = "sqlite"
	TokenStoreMemory = "memory"
)

// Config holds runtime settings for the juridik client.
type Config struct {
	APIBaseURL       string        `env:"JURIDIK_API_URL"`
	RequestTimeout   time.Duration `env:"JURIDIK_REQUEST_TIMEOUT"`
	DataDir          string        `env:"JURIDIK_DATA_DIR"`
	TokenStore       string        `env:"JURIDIK_TOKEN_STORE"`
	CheckAuthOnStart bool          `env:"JURIDIK_CHECK_AUTH"`
	LogLevel         string        `env:"JURIDIK_LOG_LEVEL"`
	LogFormat        string        `env:"JURIDIK_LOG_FORMAT"`
	RenderMarkdown   bool          `env:"JURIDIK_RENDER_MARKDOWN"`
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.DataDir = filex.DefaultDataDir()
	c.TokenStore = TokenStoreAuto
	c.CheckAuthOnStart = true
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.RenderMarkdown = true
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base url must be set")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.TokenStore {
	case TokenStoreAuto, TokenStoreSecure, TokenStoreSQLite, TokenStoreMemory:
	default:
		return fmt.Errorf("unknown token store %q", c.TokenStore)
	}
	switch c.LogFormat {
	case "text", "json", "console", "zerolog":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
