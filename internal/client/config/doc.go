// Package config loads runtime configuration for the juridik client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. JURIDIK_* environment variables.
//  4. Command-line flags that were explicitly set.
//
// # File schema
//
// Durations are Go duration strings:
//
//	{
//	  "api_base_url": "https://api.example.com/api",
//	  "request_timeout": "30s",
//	  "token_store": "auto",
//	  "log_level": "info"
//	}
package config
