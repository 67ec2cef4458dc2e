package container

import (
	"fmt"
	"sync"

	"github.com/nibzard/ryo-go/internal/mediaconfig"
)

// MovieContainer pools replacement movies for one game movie path.
type MovieContainer struct {
	state

	target string
	opts   options

	mu    sync.RWMutex
	paths []string
}

// NewMovieContainer creates a movie container. The config must carry a
// target movie path.
func NewMovieContainer(cfg mediaconfig.MovieConfig, opts ...Option) (*MovieContainer, error) {
	target := mediaconfig.Deref(cfg.TargetMoviePath, "")
	if target == "" {
		return nil, fmt.Errorf("%w: target movie path is empty", ErrMissingIdentity)
	}
	c := &MovieContainer{
		target: target,
		opts:   buildOptions(opts),
	}
	c.init(
		mediaconfig.Deref(cfg.GroupID, ""),
		mediaconfig.Deref(cfg.SharedContainerID, ""),
		mediaconfig.Deref(cfg.IsEnabled, true),
	)
	return c, nil
}

// Name describes the container.
func (c *MovieContainer) Name() string { return "Movie: " + c.target }

// TargetMoviePath returns the game movie this container replaces.
func (c *MovieContainer) TargetMoviePath() string { return c.target }

// AddMovie appends a replacement movie to the pool.
func (c *MovieContainer) AddMovie(path string) {
	c.mu.Lock()
	c.paths = append(c.paths, path)
	c.mu.Unlock()
	c.opts.logger.Info("movie added", "target", c.target, "movie", path)
}

// Len returns the pool size.
func (c *MovieContainer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// Files returns the pooled movie paths in insertion order.
func (c *MovieContainer) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.paths...)
}

// SelectMediaPath returns a uniformly random movie. Draws are independent,
// so the same movie may be returned twice in a row.
func (c *MovieContainer) SelectMediaPath() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch n := len(c.paths); n {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrEmptyPool, c.Name())
	case 1:
		return c.paths[0], nil
	default:
		index := c.opts.intn(n)
		c.opts.logger.Debug("movie selected", "target", c.target, "index", index, "total", n)
		return c.paths[index], nil
	}
}
