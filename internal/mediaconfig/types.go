package mediaconfig

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlaybackMode selects which pool entry a container serves per request.
type PlaybackMode int

const (
	// PlaybackRandom picks a random entry, never the same one twice in a row.
	PlaybackRandom PlaybackMode = iota
	// PlaybackSequential walks the pool in order, wrapping at the end.
	PlaybackSequential
)

// String returns the config spelling of the mode.
func (m PlaybackMode) String() string {
	switch m {
	case PlaybackSequential:
		return "sequential"
	default:
		return "random"
	}
}

// ParsePlaybackMode parses a playback mode name.
func ParsePlaybackMode(s string) (PlaybackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "":
		return PlaybackRandom, nil
	case "sequential", "sequence", "round-robin", "round_robin":
		return PlaybackSequential, nil
	default:
		return PlaybackRandom, fmt.Errorf("unknown playback mode %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler (used by the TOML decoder).
func (m *PlaybackMode) UnmarshalText(text []byte) error {
	parsed, err := ParsePlaybackMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *PlaybackMode) UnmarshalYAML(value *yaml.Node) error {
	return m.UnmarshalText([]byte(value.Value))
}

// Format is the encoding of a replacement audio file.
type Format int

const (
	FormatHCA Format = iota + 1
	FormatADX
	FormatWave
)

// String returns the file extension (without dot) for the format.
func (f Format) String() string {
	switch f {
	case FormatHCA:
		return "hca"
	case FormatADX:
		return "adx"
	case FormatWave:
		return "wav"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name. A leading dot is accepted so file
// extensions can be passed directly.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "hca":
		return FormatHCA, nil
	case "adx":
		return FormatADX, nil
	case "wav", "wave":
		return FormatWave, nil
	default:
		return 0, fmt.Errorf("unknown audio format %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Format) UnmarshalYAML(value *yaml.Node) error {
	return f.UnmarshalText([]byte(value.Value))
}

// AudioConfig holds the optional settings for replacement audio.
// Pointer fields are nil when unset. Values behind the pointers are never
// written through, so clones may share them.
type AudioConfig struct {
	// Containers sharing a group id can be enabled or disabled together.
	GroupID   *string `yaml:"group_id" toml:"group_id"`
	IsEnabled *bool   `yaml:"is_enabled" toml:"is_enabled"`

	// Files with the same shared container id and identity end up in one pool.
	SharedContainerID *string `yaml:"shared_container_id" toml:"shared_container_id"`

	// Identity
	CueName       *string `yaml:"cue_name" toml:"cue_name"`
	AcbName       *string `yaml:"acb_name" toml:"acb_name"`
	AudioDataName *string `yaml:"audio_data_name" toml:"audio_data_name"`
	AudioFilePath *string `yaml:"audio_file_path" toml:"audio_file_path"`

	// Playback
	SampleRate       *int          `yaml:"sample_rate" toml:"sample_rate"`
	Format           *Format       `yaml:"format" toml:"format"`
	NumChannels      *int          `yaml:"num_channels" toml:"num_channels"`
	PlayerID         *int          `yaml:"player_id" toml:"player_id"`
	CategoryIDs      []int         `yaml:"category_ids" toml:"category_ids"`
	Volume           *float64      `yaml:"volume" toml:"volume"`
	Key              *string       `yaml:"key" toml:"key"`
	Tags             []string      `yaml:"tags" toml:"tags"`
	PlaybackMode     *PlaybackMode `yaml:"playback_mode" toml:"playback_mode"`
	UsePlayerVolume  *bool         `yaml:"use_player_volume" toml:"use_player_volume"`
	VolumeCategoryID *int          `yaml:"volume_category_id" toml:"volume_category_id"`
}

// Clone returns a copy that can be modified without affecting c.
func (c AudioConfig) Clone() AudioConfig {
	out := c
	if c.CategoryIDs != nil {
		out.CategoryIDs = append([]int(nil), c.CategoryIDs...)
	}
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	return out
}

// Apply copies every field that is set in override onto c.
func (c *AudioConfig) Apply(override AudioConfig) {
	setIf(&c.GroupID, override.GroupID)
	setIf(&c.IsEnabled, override.IsEnabled)
	setIf(&c.SharedContainerID, override.SharedContainerID)
	setIf(&c.CueName, override.CueName)
	setIf(&c.AcbName, override.AcbName)
	setIf(&c.AudioDataName, override.AudioDataName)
	setIf(&c.AudioFilePath, override.AudioFilePath)
	setIf(&c.SampleRate, override.SampleRate)
	setIf(&c.Format, override.Format)
	setIf(&c.NumChannels, override.NumChannels)
	setIf(&c.PlayerID, override.PlayerID)
	if override.CategoryIDs != nil {
		c.CategoryIDs = append([]int(nil), override.CategoryIDs...)
	}
	setIf(&c.Volume, override.Volume)
	setIf(&c.Key, override.Key)
	if override.Tags != nil {
		c.Tags = append([]string(nil), override.Tags...)
	}
	setIf(&c.PlaybackMode, override.PlaybackMode)
	setIf(&c.UsePlayerVolume, override.UsePlayerVolume)
	setIf(&c.VolumeCategoryID, override.VolumeCategoryID)
}

// MergeAudio returns base with override applied. Neither argument is modified.
func MergeAudio(base, override AudioConfig) AudioConfig {
	out := base.Clone()
	out.Apply(override)
	return out
}

// MovieConfig holds the optional settings for replacement movies.
type MovieConfig struct {
	GroupID           *string `yaml:"group_id" toml:"group_id"`
	IsEnabled         *bool   `yaml:"is_enabled" toml:"is_enabled"`
	SharedContainerID *string `yaml:"shared_container_id" toml:"shared_container_id"`

	// TargetMoviePath is the game movie being replaced.
	TargetMoviePath *string `yaml:"target_movie_path" toml:"target_movie_path"`
	// MoviePath replaces the scanned file as the pool entry when set.
	MoviePath *string `yaml:"movie_path" toml:"movie_path"`
}

// Clone returns a copy of c.
func (c MovieConfig) Clone() MovieConfig {
	return c
}

// Apply copies every field that is set in override onto c.
func (c *MovieConfig) Apply(override MovieConfig) {
	setIf(&c.GroupID, override.GroupID)
	setIf(&c.IsEnabled, override.IsEnabled)
	setIf(&c.SharedContainerID, override.SharedContainerID)
	setIf(&c.TargetMoviePath, override.TargetMoviePath)
	setIf(&c.MoviePath, override.MoviePath)
}

// MergeMovie returns base with override applied.
func MergeMovie(base, override MovieConfig) MovieConfig {
	out := base.Clone()
	out.Apply(override)
	return out
}

func setIf[T any](field **T, value *T) {
	if value != nil {
		*field = value
	}
}

// Ptr returns a pointer to v. Handy for building configs in code.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value behind p, or fallback when p is nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
