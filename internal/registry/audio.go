package registry

import (
	"fmt"

	"github.com/nibzard/ryo-go/internal/container"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
)

// AudioRegistry holds cue, file and data containers.
type AudioRegistry struct {
	cues  *Store[CueKey, *container.AudioContainer]
	files *Store[PathKey, *container.AudioContainer]
	data  *Store[NameKey, *container.AudioContainer]
	opts  []container.Option
}

// NewAudioRegistry creates an empty registry. opts are passed to every
// container it creates.
func NewAudioRegistry(opts ...container.Option) *AudioRegistry {
	return &AudioRegistry{
		cues:  NewStore[CueKey, *container.AudioContainer](),
		files: NewStore[PathKey, *container.AudioContainer](),
		data:  NewStore[NameKey, *container.AudioContainer](),
		opts:  opts,
	}
}

// AddOrGetContainer returns the container a file with the fully layered cfg
// belongs to, creating it if needed.
//
// The identity is taken from the first set field of AudioFilePath,
// AudioDataName, then CueName with AcbName.
func (r *AudioRegistry) AddOrGetContainer(cfg mediaconfig.AudioConfig) (*container.AudioContainer, error) {
	shared := mediaconfig.Deref(cfg.SharedContainerID, "")

	switch {
	case cfg.AudioFilePath != nil:
		path := *cfg.AudioFilePath
		key := NewPathKey(path)
		if key == "" {
			return nil, fmt.Errorf("%w: audio file path is empty", container.ErrMissingIdentity)
		}
		return r.files.AddOrGet(key, shared, func() (*container.AudioContainer, error) {
			return container.NewFileContainer(path, cfg, r.opts...)
		})

	case cfg.AudioDataName != nil:
		name := *cfg.AudioDataName
		key := NewNameKey(name)
		if key == "" {
			return nil, fmt.Errorf("%w: audio data name is empty", container.ErrMissingIdentity)
		}
		return r.data.AddOrGet(key, shared, func() (*container.AudioContainer, error) {
			return container.NewDataContainer(name, cfg, r.opts...)
		})

	default:
		cue := mediaconfig.Deref(cfg.CueName, "")
		acb := mediaconfig.Deref(cfg.AcbName, "")
		if cue == "" {
			return nil, fmt.Errorf("%w: cue name is empty", container.ErrMissingIdentity)
		}
		return r.cues.AddOrGet(NewCueKey(cue, acb), shared, func() (*container.AudioContainer, error) {
			return container.NewCueContainer(cue, acb, cfg, r.opts...)
		})
	}
}

// TryGetCueContainer returns the active container for a cue.
func (r *AudioRegistry) TryGetCueContainer(cueName, acbName string) (*container.AudioContainer, bool) {
	return r.cues.Lookup(NewCueKey(cueName, acbName))
}

// TryGetFileContainer returns the active container for an audio file path.
func (r *AudioRegistry) TryGetFileContainer(path string) (*container.AudioContainer, bool) {
	return r.files.Lookup(NewPathKey(path))
}

// TryGetDataContainer returns the active container for named audio data.
func (r *AudioRegistry) TryGetDataContainer(name string) (*container.AudioContainer, bool) {
	return r.data.Lookup(NewNameKey(name))
}

// GroupMembers returns every audio container with the given group id.
func (r *AudioRegistry) GroupMembers(groupID string) []container.Container {
	var out []container.Container
	for _, s := range r.stores() {
		for _, c := range s.Group(groupID) {
			out = append(out, c)
		}
	}
	return out
}

// ContainerGroup returns a group view over the audio containers in groupID.
func (r *AudioRegistry) ContainerGroup(groupID string) *container.Group {
	return container.NewGroup(groupID, r.GroupMembers(groupID))
}

// Containers returns every audio container: cues, then files, then data.
func (r *AudioRegistry) Containers() []*container.AudioContainer {
	var out []*container.AudioContainer
	for _, s := range r.stores() {
		out = append(out, s.All()...)
	}
	return out
}

// Files returns every pooled audio path once, in registration order.
func (r *AudioRegistry) Files() []string {
	return uniqueFiles(r.Containers())
}

// Stats counts keys per identity kind.
type Stats struct {
	Cues       int
	Files      int
	Data       int
	Movies     int
	Containers int
}

// Add sums two stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Cues:       s.Cues + o.Cues,
		Files:      s.Files + o.Files,
		Data:       s.Data + o.Data,
		Movies:     s.Movies + o.Movies,
		Containers: s.Containers + o.Containers,
	}
}

// Stats returns key and container counts.
func (r *AudioRegistry) Stats() Stats {
	return Stats{
		Cues:       r.cues.Len(),
		Files:      r.files.Len(),
		Data:       r.data.Len(),
		Containers: len(r.Containers()),
	}
}

// Freeze ends registration for every store.
func (r *AudioRegistry) Freeze() {
	for _, s := range r.stores() {
		s.Freeze()
	}
}

// audioStore is the part of Store the registry iterates over generically.
type audioStore interface {
	Group(groupID string) []*container.AudioContainer
	All() []*container.AudioContainer
	Freeze()
}

func (r *AudioRegistry) stores() []audioStore {
	return []audioStore{r.cues, r.files, r.data}
}

func uniqueFiles[C container.Container](containers []C) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range containers {
		for _, f := range c.Files() {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
