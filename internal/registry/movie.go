package registry

import (
	"fmt"

	"github.com/nibzard/ryo-go/internal/container"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
)

// MovieRegistry holds movie containers keyed by target movie path.
type MovieRegistry struct {
	movies *Store[PathKey, *container.MovieContainer]
	opts   []container.Option
}

// NewMovieRegistry creates an empty movie registry.
func NewMovieRegistry(opts ...container.Option) *MovieRegistry {
	return &MovieRegistry{
		movies: NewStore[PathKey, *container.MovieContainer](),
		opts:   opts,
	}
}

// AddOrGetContainer returns the container for cfg's target movie path,
// creating it if needed.
func (r *MovieRegistry) AddOrGetContainer(cfg mediaconfig.MovieConfig) (*container.MovieContainer, error) {
	key := NewPathKey(mediaconfig.Deref(cfg.TargetMoviePath, ""))
	if key == "" {
		return nil, fmt.Errorf("%w: target movie path is empty", container.ErrMissingIdentity)
	}
	return r.movies.AddOrGet(key, mediaconfig.Deref(cfg.SharedContainerID, ""), func() (*container.MovieContainer, error) {
		return container.NewMovieContainer(cfg, r.opts...)
	})
}

// AddMovieBind layers a single replacement movie over targetMoviePath.
func (r *MovieRegistry) AddMovieBind(targetMoviePath, bindPath string) error {
	c, err := r.AddOrGetContainer(mediaconfig.MovieConfig{TargetMoviePath: &targetMoviePath})
	if err != nil {
		return err
	}
	c.AddMovie(bindPath)
	return nil
}

// TryGetMovie returns the active container for a game movie path.
func (r *MovieRegistry) TryGetMovie(targetMoviePath string) (*container.MovieContainer, bool) {
	return r.movies.Lookup(NewPathKey(targetMoviePath))
}

// GroupMembers returns every movie container with the given group id.
func (r *MovieRegistry) GroupMembers(groupID string) []container.Container {
	var out []container.Container
	for _, c := range r.movies.Group(groupID) {
		out = append(out, c)
	}
	return out
}

// ContainerGroup returns a group view over the movie containers in groupID.
func (r *MovieRegistry) ContainerGroup(groupID string) *container.Group {
	return container.NewGroup(groupID, r.GroupMembers(groupID))
}

// Containers returns every movie container.
func (r *MovieRegistry) Containers() []*container.MovieContainer {
	return r.movies.All()
}

// Files returns every pooled movie path once.
func (r *MovieRegistry) Files() []string {
	return uniqueFiles(r.movies.All())
}

// Stats returns key and container counts.
func (r *MovieRegistry) Stats() Stats {
	return Stats{
		Movies:     r.movies.Len(),
		Containers: len(r.movies.All()),
	}
}

// Freeze ends registration.
func (r *MovieRegistry) Freeze() {
	r.movies.Freeze()
}
