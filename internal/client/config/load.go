package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"
)

// Flag names registered by BindFlags.
const (
	FlagConfig     = "config"
	FlagAPI        = "api"
	FlagTimeout    = "timeout"
	FlagDataDir    = "data-dir"
	FlagTokenStore = "token-store"
	FlagLogLevel   = "log-level"
	FlagLogFormat  = "log-format"
	FlagPlain      = "plain"
)

// FlagValues receives the raw persistent flag values of the root command.
type FlagValues struct {
	ConfigPath     string
	APIBaseURL     string
	RequestTimeout time.Duration
	DataDir        string
	TokenStore     string
	LogLevel       string
	LogFormat      string
	Plain          bool
}

// BindFlags registers the configuration flags on cmd as persistent flags.
func BindFlags(cmd *cobra.Command) *FlagValues {
	var d Config
	d.LoadDefaults()

	fv := &FlagValues{}
	f := cmd.PersistentFlags()
	f.StringVarP(&fv.ConfigPath, FlagConfig, "c", "", "path to a JSON or YAML config file")
	f.StringVarP(&fv.APIBaseURL, FlagAPI, "a", d.APIBaseURL, "backend API base URL")
	f.DurationVarP(&fv.RequestTimeout, FlagTimeout, "t", d.RequestTimeout, "request timeout")
	f.StringVar(&fv.DataDir, FlagDataDir, d.DataDir, "directory for local session data")
	f.StringVar(&fv.TokenStore, FlagTokenStore, d.TokenStore, "token store: auto, secure, sqlite or memory")
	f.StringVar(&fv.LogLevel, FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&fv.LogFormat, FlagLogFormat, d.LogFormat, "log format: text, json, console, zerolog")
	f.BoolVar(&fv.Plain, FlagPlain, false, "print assistant replies without markdown rendering")
	return fv
}

// Load builds the effective configuration for cmd: defaults, then the
// config file, then environment, then flags the user actually set.
func Load(cmd *cobra.Command, fv *FlagValues) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if fv.ConfigPath != "" {
		if err := parseFile(cfg, fv.ConfigPath); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	applyFlags(cfg, fv, cmd.Flags().Changed)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *Config, fv *FlagValues, changed func(string) bool) {
	if changed(FlagAPI) {
		cfg.APIBaseURL = fv.APIBaseURL
	}
	if changed(FlagTimeout) {
		cfg.RequestTimeout = fv.RequestTimeout
	}
	if changed(FlagDataDir) {
		cfg.DataDir = fv.DataDir
	}
	if changed(FlagTokenStore) {
		cfg.TokenStore = fv.TokenStore
	}
	if changed(FlagLogLevel) {
		cfg.LogLevel = fv.LogLevel
	}
	if changed(FlagLogFormat) {
		cfg.LogFormat = fv.LogFormat
	}
	if changed(FlagPlain) && fv.Plain {
		cfg.RenderMarkdown = false
	}
}
