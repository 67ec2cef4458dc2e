// Package container holds pools of replacement media and picks one entry per
// request according to the pool's playback mode.
//
// Containers are built while media folders are scanned and live for the rest
// of the process. After scanning only the enabled flag changes; it may be
// flipped from any goroutine while lookups read it.
package container

import (
	"errors"
	"math/rand/v2"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/nibzard/ryo-go/internal/logging"
)

var (
	// ErrEmptyPool is returned when selecting from a container with no media.
	// It means the scan registered a container without adding a file to it.
	ErrEmptyPool = errors.New("container has no media")

	// ErrMissingIdentity is returned when a container is built without the
	// key it would be registered under.
	ErrMissingIdentity = errors.New("container identity missing")
)

// Container is the behaviour shared by audio and movie containers.
type Container interface {
	// Name is a human readable description used in logs.
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	GroupID() string
	SharedContainerID() string
	// Files returns a snapshot of the pooled media paths in insertion order.
	Files() []string
	Len() int
	// SelectMediaPath returns one pooled path according to the playback mode.
	SelectMediaPath() (string, error)
}

// IntN returns a pseudo-random number in [0, n).
type IntN func(n int) int

// Option configures a container.
type Option func(*options)

type options struct {
	intn   IntN
	logger *log.Logger
}

// WithIntN overrides the random source used for random playback.
func WithIntN(fn IntN) Option {
	return func(o *options) {
		if fn != nil {
			o.intn = fn
		}
	}
}

// WithLogger sets the logger used for registration and selection messages.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{intn: rand.IntN}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrDiscard(o.logger)
	return o
}

// state holds the fields every container kind carries.
type state struct {
	enabled  atomic.Bool
	groupID  string
	sharedID string
}

func (s *state) init(groupID, sharedID string, enabled bool) {
	s.groupID = groupID
	s.sharedID = sharedID
	s.enabled.Store(enabled)
}

// Enabled reports whether lookups may return this container.
func (s *state) Enabled() bool { return s.enabled.Load() }

// SetEnabled toggles the container.
func (s *state) SetEnabled(enabled bool) { s.enabled.Store(enabled) }

// GroupID returns the group id, or "" if the container has none.
func (s *state) GroupID() string { return s.groupID }

// SharedContainerID returns the shared container id, or "".
func (s *state) SharedContainerID() string { return s.sharedID }
