package container

import (
	"fmt"
	"sync"

	"github.com/nibzard/ryo-go/internal/mediaconfig"
)

// Kind is the identity an audio container replaces.
type Kind int

const (
	// KindCue replaces a cue in an ACB bank.
	KindCue Kind = iota
	// KindFile replaces a loose audio file by path.
	KindFile
	// KindData replaces audio data by name.
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindData:
		return "data"
	default:
		return "cue"
	}
}

// Audio is one replacement file in an audio pool.
type Audio struct {
	Path   string
	Format mediaconfig.Format
	// Config is the fully layered config the file was registered with.
	Config mediaconfig.AudioConfig
}

// AudioContainer pools replacement audio for one cue, file or data name.
type AudioContainer struct {
	state

	kind        Kind
	cueName     string
	acbName     string
	target      string
	playerID    int
	categoryIDs []int
	mode        mediaconfig.PlaybackMode
	opts        options

	mu        sync.Mutex
	audios    []Audio
	prevIndex int
}

// NewCueContainer creates a container for a cue in the given bank.
// An empty bank name means the game's default bank.
func NewCueContainer(cueName, acbName string, cfg mediaconfig.AudioConfig, opts ...Option) (*AudioContainer, error) {
	if cueName == "" {
		return nil, fmt.Errorf("%w: cue name is empty", ErrMissingIdentity)
	}
	c := newAudioContainer(KindCue, cfg, opts)
	c.cueName = cueName
	c.acbName = acbName
	return c, nil
}

// NewFileContainer creates a container replacing the audio file at path.
func NewFileContainer(path string, cfg mediaconfig.AudioConfig, opts ...Option) (*AudioContainer, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: audio file path is empty", ErrMissingIdentity)
	}
	c := newAudioContainer(KindFile, cfg, opts)
	c.target = path
	return c, nil
}

// NewDataContainer creates a container replacing named audio data.
func NewDataContainer(name string, cfg mediaconfig.AudioConfig, opts ...Option) (*AudioContainer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: audio data name is empty", ErrMissingIdentity)
	}
	c := newAudioContainer(KindData, cfg, opts)
	c.target = name
	return c, nil
}

func newAudioContainer(kind Kind, cfg mediaconfig.AudioConfig, opts []Option) *AudioContainer {
	c := &AudioContainer{
		kind:      kind,
		playerID:  mediaconfig.Deref(cfg.PlayerID, -1),
		mode:      mediaconfig.Deref(cfg.PlaybackMode, mediaconfig.PlaybackRandom),
		opts:      buildOptions(opts),
		prevIndex: -1,
	}
	if cfg.CategoryIDs != nil {
		c.categoryIDs = append([]int(nil), cfg.CategoryIDs...)
	}
	c.init(
		mediaconfig.Deref(cfg.GroupID, ""),
		mediaconfig.Deref(cfg.SharedContainerID, ""),
		mediaconfig.Deref(cfg.IsEnabled, true),
	)
	return c
}

// Name describes the container's identity.
func (c *AudioContainer) Name() string {
	switch c.kind {
	case KindFile:
		return "File: " + c.target
	case KindData:
		return "Data: " + c.target
	default:
		acb := c.acbName
		if acb == "" {
			acb = "(default)"
		}
		return fmt.Sprintf("Cue: %s / ACB: %s", c.cueName, acb)
	}
}

// Kind returns what the container replaces.
func (c *AudioContainer) Kind() Kind { return c.kind }

// CueName returns the cue name of a cue container.
func (c *AudioContainer) CueName() string { return c.cueName }

// AcbName returns the bank name of a cue container.
func (c *AudioContainer) AcbName() string { return c.acbName }

// Target returns the file path or data name of a file or data container.
func (c *AudioContainer) Target() string { return c.target }

// PlayerID returns the player to play on, or -1 for the game's choice.
func (c *AudioContainer) PlayerID() int { return c.playerID }

// CategoryIDs returns the sound categories applied before playing.
func (c *AudioContainer) CategoryIDs() []int {
	if c.categoryIDs == nil {
		return nil
	}
	return append([]int(nil), c.categoryIDs...)
}

// PlaybackMode returns how entries are picked.
func (c *AudioContainer) PlaybackMode() mediaconfig.PlaybackMode { return c.mode }

// AddAudio appends a file to the pool.
func (c *AudioContainer) AddAudio(audio Audio) {
	c.mu.Lock()
	c.audios = append(c.audios, audio)
	c.mu.Unlock()
	c.opts.logger.Info("file added", "container", c.Name(), "file", audio.Path)
}

// Len returns the pool size.
func (c *AudioContainer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.audios)
}

// Files returns the pooled paths in insertion order.
func (c *AudioContainer) Files() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	files := make([]string, len(c.audios))
	for i, a := range c.audios {
		files[i] = a.Path
	}
	return files
}

// SelectAudio picks the next entry according to the playback mode.
//
// Random mode never returns the same entry twice in a row. Sequential mode
// starts at the first entry and wraps. A single-entry pool always returns
// that entry without touching the selection state.
func (c *AudioContainer) SelectAudio() (Audio, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.audios)
	switch n {
	case 0:
		return Audio{}, fmt.Errorf("%w: %s", ErrEmptyPool, c.Name())
	case 1:
		return c.audios[0], nil
	}

	var index int
	if c.mode == mediaconfig.PlaybackSequential {
		index = (c.prevIndex + 1) % n
	} else {
		index = c.opts.intn(n)
		if index == c.prevIndex {
			index = (index + 1) % n
		}
	}
	c.prevIndex = index

	c.opts.logger.Debug("audio selected", "container", c.Name(), "mode", c.mode, "index", index, "total", n)
	return c.audios[index], nil
}

// SelectMediaPath returns the path of the next selected entry.
func (c *AudioContainer) SelectMediaPath() (string, error) {
	audio, err := c.SelectAudio()
	if err != nil {
		return "", err
	}
	return audio.Path, nil
}
