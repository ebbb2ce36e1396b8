// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for carchat.
//
// Supports TOML, JSON and YAML configuration files, with defaults,
// environment variable overrides, validation and live reload.
//
// # Key Types
//
//   - Config: complete configuration
//   - BackendConfig: search function endpoint and transport tuning
//   - UIConfig: language, theme and rendering switches
//   - StorageConfig: saved-session database
//   - LogConfig: log level and destination
//   - Watcher: reloads the file on change and notifies subscribers
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CARCHAT_*)
//   - ~/.carchat/config.toml
//   - ~/.carchat/config.json
//   - ~/.carchat/config.yaml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
// Access settings:
//
//	client := search.New(cfg.Backend.URL, cfg.Backend.AnonKey).
//	    WithTimeout(cfg.Backend.Timeout())
package config
