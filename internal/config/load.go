package config

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/ryo-go/internal/utils"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.ryo/ryo.toml or OS-specific config dir)
// 3. Project config file (ryo.toml or .ryo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// Flags are registered on fs, so callers may add their own flags first and
// read positional arguments from fs.Args() afterwards.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
		cws.Files = append(cws.Files, path)
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
		cws.Files = append(cws.Files, path)
	}

	// 4. Environment
	if err := loadFromEnv(cfg, cws.Sources); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	// 5. CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cws, nil
}

// loadConfigFile decodes a TOML file over cfg. Lists and binds from the
// file are appended to what earlier sources set.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}

	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) == 0 || seen[key[0]] {
			continue
		}
		field := key[0]
		seen[field] = true
		sources[field] = source
		switch field {
		case "game":
			cfg.Game = file.Game
		case "audio_paths":
			cfg.AudioPaths = append(cfg.AudioPaths, file.AudioPaths...)
		case "movie_paths":
			cfg.MoviePaths = append(cfg.MoviePaths, file.MoviePaths...)
		case "movie_binds":
			cfg.MovieBinds = mergeBinds(cfg.MovieBinds, file.MovieBinds)
		case "check_workers":
			cfg.CheckWorkers = file.CheckWorkers
		case "log_level":
			cfg.LogLevel = file.LogLevel
		case "log_format":
			cfg.LogFormat = file.LogFormat
		case "log_timestamps":
			cfg.LogTimestamps = file.LogTimestamps
		case "log_caller":
			cfg.LogCaller = file.LogCaller
		}
	}
	return nil
}

func mergeBinds(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.Game = utils.GameName(cfg.Game)
	cfg.AudioPaths = resolvePaths(cfg.ProjectRoot, cfg.AudioPaths)
	cfg.MoviePaths = resolvePaths(cfg.ProjectRoot, cfg.MoviePaths)
	for target, bind := range cfg.MovieBinds {
		cfg.MovieBinds[target] = resolvePath(cfg.ProjectRoot, bind)
	}

	if cfg.CheckWorkers <= 0 {
		cfg.CheckWorkers = runtime.NumCPU()
	}
	return nil
}
