package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Pointer fields distinguish "absent" from
// zero so that a file only overrides the keys it names.
type fileConfig struct {
	APIBaseURL       *string `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout   *string `json:"request_timeout" yaml:"request_timeout"`
	DataDir          *string `json:"data_dir" yaml:"data_dir"`
	TokenStore       *string `json:"token_store" yaml:"token_store"`
	CheckAuthOnStart *bool   `json:"check_auth_on_start" yaml:"check_auth_on_start"`
	LogLevel         *string `json:"log_level" yaml:"log_level"`
	LogFormat        *string `json:"log_format" yaml:"log_format"`
	RenderMarkdown   *bool   `json:"render_markdown" yaml:"render_markdown"`
}

// parseFile overlays cfg with the values found in path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	if fc.APIBaseURL != nil {
		cfg.APIBaseURL = *fc.APIBaseURL
	}
	if fc.RequestTimeout != nil {
		d, err := time.ParseDuration(*fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.TokenStore != nil {
		cfg.TokenStore = *fc.TokenStore
	}
	if fc.CheckAuthOnStart != nil {
		cfg.CheckAuthOnStart = *fc.CheckAuthOnStart
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.RenderMarkdown != nil {
		cfg.RenderMarkdown = *fc.RenderMarkdown
	}
	return nil
}

// MarshalYAML renders c in the config file format, so the output of
// "juridik config" can be saved and passed back with --config.
func (c *Config) MarshalYAML() (any, error) {
	timeout := c.RequestTimeout.String()
	return fileConfig{
		APIBaseURL:       &c.APIBaseURL,
		RequestTimeout:   &timeout,
		DataDir:          &c.DataDir,
		TokenStore:       &c.TokenStore,
		CheckAuthOnStart: &c.CheckAuthOnStart,
		LogLevel:         &c.LogLevel,
		LogFormat:        &c.LogFormat,
		RenderMarkdown:   &c.RenderMarkdown,
	}, nil
}
