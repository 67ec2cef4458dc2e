package config

import (
	"flag"
	"strings"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// bindFlag collects repeatable target=replacement flags.
type bindFlag map[string]string

func (b bindFlag) String() string {
	pairs := make([]string, 0, len(b))
	for target, bind := range b {
		pairs = append(pairs, target+"="+bind)
	}
	return strings.Join(pairs, ",")
}

func (b bindFlag) Set(v string) error {
	parsed, err := parseBinds([]string{v})
	if err != nil {
		return err
	}
	for target, bind := range parsed {
		b[target] = bind
	}
	return nil
}

// flagFields maps flag names to config field names for source tracking.
var flagFields = map[string]string{
	"game":           "game",
	"audio":          "audio_paths",
	"movie":          "movie_paths",
	"bind":           "movie_binds",
	"workers":        "check_workers",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the settings flags on fs and parses args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("ryo", flag.ContinueOnError)
	}

	var audio, movies listFlag
	binds := bindFlag{}

	fs.StringVar(&cfg.Game, "game", cfg.Game, "Game executable name (e.g. p5r, SMT5V-Win64-Shipping)")
	fs.Var(&audio, "audio", "Audio folder or file to scan (repeatable)")
	fs.Var(&movies, "movie", "Movie folder or file to scan (repeatable)")
	fs.Var(binds, "bind", "Movie bind target=replacement (repeatable)")
	fs.IntVar(&cfg.CheckWorkers, "workers", cfg.CheckWorkers, "Concurrent file checks for doctor")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.AudioPaths = append(cfg.AudioPaths, audio...)
	cfg.MoviePaths = append(cfg.MoviePaths, movies...)
	cfg.MovieBinds = mergeBinds(cfg.MovieBinds, binds)

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
