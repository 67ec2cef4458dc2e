package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with the source of each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultCheckWorkers = 4
)

// Config holds ryo application settings.
type Config struct {
	// Game is the game executable name used to pick defaults and cue rewrites.
	Game string `toml:"game"`

	// Media folders or files to scan.
	AudioPaths []string `toml:"audio_paths"`
	MoviePaths []string `toml:"movie_paths"`

	// MovieBinds maps a game movie path to a single replacement movie.
	MovieBinds map[string]string `toml:"movie_binds"`

	// CheckWorkers bounds concurrent file checks in doctor.
	CheckWorkers int `toml:"check_workers"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// ProjectRoot is the directory relative media paths resolve against.
	ProjectRoot string `toml:"-"`
}

// configFields returns the configurable field names for source tracking.
func configFields() []string {
	return []string{
		"game",
		"audio_paths",
		"movie_paths",
		"movie_binds",
		"check_workers",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}
