package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/ryo-go/internal/utils"
)

// listSeparators split RYO_AUDIO_PATHS and friends. Both are accepted so the
// same value works on every OS.
const listSeparators = ",;"

// loadFromEnv overrides config from RYO_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) { sources[field] = SourceEnv }

	if v := os.Getenv("RYO_GAME"); v != "" {
		cfg.Game = v
		set("game")
	}
	if v := os.Getenv("RYO_AUDIO_PATHS"); v != "" {
		cfg.AudioPaths = append(cfg.AudioPaths, utils.SplitAndTrim(v, listSeparators)...)
		set("audio_paths")
	}
	if v := os.Getenv("RYO_MOVIE_PATHS"); v != "" {
		cfg.MoviePaths = append(cfg.MoviePaths, utils.SplitAndTrim(v, listSeparators)...)
		set("movie_paths")
	}
	if v := os.Getenv("RYO_MOVIE_BINDS"); v != "" {
		binds, err := parseBinds(utils.SplitAndTrim(v, listSeparators))
		if err != nil {
			return fmt.Errorf("RYO_MOVIE_BINDS: %w", err)
		}
		cfg.MovieBinds = mergeBinds(cfg.MovieBinds, binds)
		set("movie_binds")
	}
	if v := os.Getenv("RYO_CHECK_WORKERS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("RYO_CHECK_WORKERS: %w", err)
		}
		cfg.CheckWorkers = n
		set("check_workers")
	}
	if v := os.Getenv("RYO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("RYO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("RYO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("RYO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
	return nil
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// parseBinds parses target=replacement pairs.
func parseBinds(pairs []string) (map[string]string, error) {
	binds := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		target, bind, ok := strings.Cut(pair, "=")
		target, bind = strings.TrimSpace(target), strings.TrimSpace(bind)
		if !ok || target == "" || bind == "" {
			return nil, fmt.Errorf("invalid movie bind %q, want target=replacement", pair)
		}
		binds[target] = bind
	}
	return binds, nil
}
