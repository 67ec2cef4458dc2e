package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/ryo-go/internal/logging"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
)

var (
	// ErrPathNotFound is returned when a path passed to AddPath does not exist.
	// It is not fatal to a scan; callers normally log it and move on.
	ErrPathNotFound = errors.New("path not found")

	// ErrUnsupportedFormat is returned for a media file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported media format")
)

// AudioConfigLoader reads audio config files.
type AudioConfigLoader interface {
	LoadAudio(path string) (mediaconfig.AudioConfig, error)
}

// MovieConfigLoader reads movie config files.
type MovieConfigLoader interface {
	LoadMovie(path string) (mediaconfig.MovieConfig, error)
}

// Option configures a scanner.
type Option func(*options)

type options struct {
	logger      *log.Logger
	newID       func() string
	audioLoader AudioConfigLoader
	movieLoader MovieConfigLoader
}

// WithLogger sets the scanner logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIDGenerator overrides how shared container ids are generated for
// single-unit folders.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithAudioLoader overrides the audio config loader.
func WithAudioLoader(l AudioConfigLoader) Option {
	return func(o *options) {
		if l != nil {
			o.audioLoader = l
		}
	}
}

// WithMovieLoader overrides the movie config loader.
func WithMovieLoader(l MovieConfigLoader) Option {
	return func(o *options) {
		if l != nil {
			o.movieLoader = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		newID:       uuid.NewString,
		audioLoader: mediaconfig.Loader{},
		movieLoader: mediaconfig.Loader{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrDiscard(o.logger)
	return o
}

// walkFolder calls onFile for every file in dir accepted by keep, then
// onFolder for every subfolder. Entries are visited in name order. Errors
// from callbacks do not stop the walk; they are joined and returned.
func walkFolder(dir string, keep func(string) bool, onFile, onFolder func(string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read folder %s: %w", dir, err)
	}

	var errs []error
	var folders []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			folders = append(folders, path)
			continue
		}
		if !keep(path) {
			continue
		}
		if err := onFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	for _, folder := range folders {
		if err := onFolder(folder); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// statPath resolves whether path is a folder.
func statPath(path string) (isDir bool, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrPathNotFound, path, err)
	}
	return fi.IsDir(), nil
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CueNameFromFile derives a cue name from a media file name. When the first
// underscore separated part of the name is an integer, the integer is the cue
// name ("0012_boss.hca" -> "12"); otherwise the whole base name is used.
// The integer must fit in 32 bits.
func CueNameFromFile(file string) string {
	name := stem(file)
	first, _, _ := strings.Cut(name, "_")
	if id, err := strconv.ParseInt(first, 10, 32); err == nil {
		return strconv.FormatInt(id, 10)
	}
	return name
}
