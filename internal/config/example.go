package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# ryo configuration file
# Settings can be overridden by RYO_* environment variables or CLI flags.

# Game executable name, used to pick built-in defaults and cue renaming.
# Known games: p5r, p4g, p3r, SMT5V-Win64-Shipping, likeadragon8,
# likeadragongaiden, LostJudgment, RainCodePlus-Win64-Shipping
game = "p5r"

# Folders (or single files) of replacement audio. Relative paths resolve
# against the working directory; ~ and environment variables are expanded.
audio_paths = ["~/mods/ryo/audio"]

# Folders of replacement movies (.usm).
movie_paths = ["~/mods/ryo/movies"]

# Concurrent file checks run by "ryo doctor" (0 = number of CPUs).
check_workers = 4

# Logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false

# Single movie replacements: game movie path = replacement file.
[movie_binds]
# "movie/opening.usm" = "~/mods/ryo/opening_hd.usm"
`
}
