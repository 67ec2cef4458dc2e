// Package engine ties the media registries, scanners and game defaults
// together behind the lookups a game hook layer calls.
//
// An Engine has two phases. During registration AddAudioPath, AddMoviePath
// and AddMovieBind populate the registries from a single goroutine. Seal ends
// registration; after it every lookup and selection is safe for concurrent
// use.
package engine

import (
	"slices"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/nibzard/ryo-go/internal/container"
	"github.com/nibzard/ryo-go/internal/gamedefaults"
	"github.com/nibzard/ryo-go/internal/logging"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
	"github.com/nibzard/ryo-go/internal/registry"
	"github.com/nibzard/ryo-go/internal/scanner"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger      *log.Logger
	intN        container.IntN
	newID       func() string
	audioLoader scanner.AudioConfigLoader
	movieLoader scanner.MovieConfigLoader
}

// WithLogger sets the logger shared by every component.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIntN sets the random source used by container selection.
func WithIntN(fn container.IntN) Option {
	return func(o *options) { o.intN = fn }
}

// WithIDGenerator sets the shared container id generator used by scanners.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithConfigLoaders overrides how media config files are read.
func WithConfigLoaders(audio scanner.AudioConfigLoader, movie scanner.MovieConfigLoader) Option {
	return func(o *options) {
		o.audioLoader = audio
		o.movieLoader = movie
	}
}

// Engine is the media replacement engine for one game.
type Engine struct {
	game    string
	rewrite gamedefaults.CueRewriteFunc
	logger  *log.Logger

	audio  *registry.AudioRegistry
	movies *registry.MovieRegistry

	audioScanner *scanner.AudioScanner
	movieScanner *scanner.MovieScanner

	sealed atomic.Bool
}

// New creates an engine for game. The game's seed config and cue rewrite are
// taken from table; a nil table means no defaults.
func New(game string, table *gamedefaults.Table, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.OrDiscard(o.logger)

	containerOpts := []container.Option{container.WithLogger(logger)}
	if o.intN != nil {
		containerOpts = append(containerOpts, container.WithIntN(o.intN))
	}
	scannerOpts := []scanner.Option{
		scanner.WithLogger(logger),
		scanner.WithIDGenerator(o.newID),
		scanner.WithAudioLoader(o.audioLoader),
		scanner.WithMovieLoader(o.movieLoader),
	}

	audio := registry.NewAudioRegistry(containerOpts...)
	movies := registry.NewMovieRegistry(containerOpts...)
	e := &Engine{
		game:         game,
		rewrite:      table.CueRewrite(game),
		logger:       logger,
		audio:        audio,
		movies:       movies,
		audioScanner: scanner.NewAudioScanner(audio, table.DefaultConfig(game), scannerOpts...),
		movieScanner: scanner.NewMovieScanner(movies, scannerOpts...),
	}
	logger.Info("engine created", "game", game, "cue_rewrite", e.rewrite != nil)
	return e
}

// Game returns the game the engine was created for.
func (e *Engine) Game() string { return e.game }

// AddAudioPath scans an audio folder or file. cfg is layered over the game
// defaults and under any config found on disk.
func (e *Engine) AddAudioPath(path string, cfg mediaconfig.AudioConfig) error {
	if e.sealed.Load() {
		return registry.ErrFrozen
	}
	return e.audioScanner.AddPath(path, cfg)
}

// AddMoviePath scans a movie folder or file.
func (e *Engine) AddMoviePath(path string, cfg mediaconfig.MovieConfig) error {
	if e.sealed.Load() {
		return registry.ErrFrozen
	}
	return e.movieScanner.AddPath(path, cfg)
}

// AddMovieBind replaces targetMoviePath with the movie at bindPath.
func (e *Engine) AddMovieBind(targetMoviePath, bindPath string) error {
	if e.sealed.Load() {
		return registry.ErrFrozen
	}
	return e.movies.AddMovieBind(targetMoviePath, bindPath)
}

// Seal ends registration. It is safe to call more than once.
func (e *Engine) Seal() {
	if e.sealed.Swap(true) {
		return
	}
	e.audio.Freeze()
	e.movies.Freeze()
	stats := e.Stats()
	e.logger.Info("registries sealed",
		"cues", stats.Cues,
		"files", stats.Files,
		"data", stats.Data,
		"movies", stats.Movies,
		"containers", stats.Containers,
	)
}

// Sealed reports whether Seal has been called.
func (e *Engine) Sealed() bool { return e.sealed.Load() }

// TryGetCueContainer returns the active container for a cue. The name is
// used as given; see RewriteCue and ResolveCue.
func (e *Engine) TryGetCueContainer(cueName, acbName string) (*container.AudioContainer, bool) {
	return e.audio.TryGetCueContainer(cueName, acbName)
}

// TryGetFileContainer returns the active container for a game audio file.
func (e *Engine) TryGetFileContainer(path string) (*container.AudioContainer, bool) {
	return e.audio.TryGetFileContainer(path)
}

// TryGetDataContainer returns the active container for named audio data.
func (e *Engine) TryGetDataContainer(name string) (*container.AudioContainer, bool) {
	return e.audio.TryGetDataContainer(name)
}

// TryGetMovie returns the active container for a game movie.
func (e *Engine) TryGetMovie(targetMoviePath string) (*container.MovieContainer, bool) {
	return e.movies.TryGetMovie(targetMoviePath)
}

// RewriteCue translates a cue name the game plays into the name media is
// registered under. Games without a rewrite return cueName unchanged.
func (e *Engine) RewriteCue(cueName, acbName string) string {
	if e.rewrite == nil {
		return cueName
	}
	return e.rewrite(gamedefaults.CueInfo{Cue: cueName, Acb: acbName})
}

// ResolveCue rewrites the cue name and looks it up.
func (e *Engine) ResolveCue(cueName, acbName string) (*container.AudioContainer, bool) {
	return e.TryGetCueContainer(e.RewriteCue(cueName, acbName), acbName)
}

// GetContainerGroup returns a group over every audio and movie container
// tagged groupID. The group is empty when nothing carries the id.
func (e *Engine) GetContainerGroup(groupID string) *container.Group {
	members := e.audio.GroupMembers(groupID)
	members = append(members, e.movies.GroupMembers(groupID)...)
	return container.NewGroup(groupID, members)
}

// GroupIDs returns the distinct group ids in use, sorted.
func (e *Engine) GroupIDs() []string {
	var ids []string
	for _, c := range e.Containers() {
		if id := c.GroupID(); id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Containers returns every registered container, audio first.
func (e *Engine) Containers() []container.Container {
	var out []container.Container
	for _, c := range e.audio.Containers() {
		out = append(out, c)
	}
	for _, c := range e.movies.Containers() {
		out = append(out, c)
	}
	return out
}

// Stats returns key and container counts across both registries.
func (e *Engine) Stats() registry.Stats {
	return e.audio.Stats().Add(e.movies.Stats())
}

// MediaFiles returns every pooled media path once.
func (e *Engine) MediaFiles() []string {
	files := e.audio.Files()
	for _, f := range e.movies.Files() {
		if !slices.Contains(files, f) {
			files = append(files, f)
		}
	}
	return files
}
