// Package config handles ryo application settings.
//
// Settings are loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.ryo/ryo.toml or OS-specific config directory)
// 3. Project config file (ryo.toml or .ryo.toml in the working directory)
// 4. Environment variables (RYO_*)
// 5. CLI flags
//
// Scalar settings from a later source replace earlier ones. Media paths and
// movie binds accumulate across sources.
//
// User-level config locations:
// - ~/.ryo/ryo.toml (preferred)
// - Windows: %APPDATA%\ryo\ryo.toml
// - macOS: ~/Library/Application Support/ryo/ryo.toml
// - Linux/BSD: $XDG_CONFIG_HOME/ryo/ryo.toml or ~/.config/ryo/ryo.toml
package config
