package scanner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nibzard/ryo-go/internal/mediaconfig"
	"github.com/nibzard/ryo-go/internal/registry"
)

// MovieExt is the extension of replacement movies.
const MovieExt = ".usm"

// MovieScanner registers movie files with a MovieRegistry.
type MovieScanner struct {
	registry *registry.MovieRegistry
	opts     options
}

// NewMovieScanner creates a movie scanner.
func NewMovieScanner(reg *registry.MovieRegistry, opts ...Option) *MovieScanner {
	return &MovieScanner{registry: reg, opts: buildOptions(opts)}
}

// AddPath registers a folder tree or a single movie file.
func (s *MovieScanner) AddPath(path string, cfg mediaconfig.MovieConfig) error {
	isDir, err := statPath(path)
	if err != nil {
		s.opts.logger.Error("movie path was not found", "path", path)
		return err
	}
	if isDir {
		return s.AddFolder(path, cfg)
	}
	return s.AddFile(path, cfg)
}

// AddFolder registers every movie below dir.
func (s *MovieScanner) AddFolder(dir string, inherited mediaconfig.MovieConfig) error {
	s.opts.logger.Info("adding movie folder", "dir", dir)

	cfg := inherited.Clone()
	if path := mediaconfig.FolderConfigPath(dir); path != "" {
		if folderCfg, ok := s.loadConfig(path); ok {
			cfg.Apply(folderCfg)
		}
	}

	// A folder named like a movie holds alternatives for that one movie.
	if strings.EqualFold(filepath.Ext(dir), MovieExt) {
		cfg.SharedContainerID = mediaconfig.Ptr(s.opts.newID())
	}

	return walkFolder(dir, isMovieCandidate,
		func(file string) error {
			err := s.AddFile(file, cfg)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, ErrUnsupportedFormat):
				s.opts.logger.Warn("config without movie_path next to a non-movie file", "file", file)
				return nil
			default:
				s.opts.logger.Error("failed to add movie", "file", file, "err", err)
				return err
			}
		},
		func(folder string) error {
			return s.AddFolder(folder, cfg)
		},
	)
}

// AddFile registers one movie. The target defaults to the file's base name.
// A config carrying movie_path registers that path instead of the file.
func (s *MovieScanner) AddFile(file string, inherited mediaconfig.MovieConfig) error {
	cfg := inherited.Clone()
	if path := mediaconfig.FileConfigPath(file); path != "" {
		if fileCfg, ok := s.loadConfig(path); ok {
			cfg.Apply(fileCfg)
		}
	}

	movie := file
	if cfg.MoviePath != nil {
		movie = *cfg.MoviePath
	} else if !isMovieFile(file) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
	}

	if cfg.TargetMoviePath == nil {
		cfg.TargetMoviePath = mediaconfig.Ptr(filepath.Base(file))
	}

	c, err := s.registry.AddOrGetContainer(cfg)
	if err != nil {
		return fmt.Errorf("register %s: %w", file, err)
	}
	c.AddMovie(movie)
	return nil
}

func (s *MovieScanner) loadConfig(path string) (mediaconfig.MovieConfig, bool) {
	s.opts.logger.Debug("loading movie config", "file", path)
	cfg, err := s.opts.movieLoader.LoadMovie(path)
	if err != nil {
		s.opts.logger.Error("failed to parse movie config", "file", path, "err", err)
		return mediaconfig.MovieConfig{}, false
	}
	return cfg, true
}

func isMovieFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), MovieExt)
}

// isMovieCandidate accepts movies and any other media file with a sibling
// config, which may point it at a movie through movie_path.
func isMovieCandidate(path string) bool {
	if isMovieFile(path) {
		return true
	}
	return !mediaconfig.IsConfigFile(path) && mediaconfig.FileConfigPath(path) != ""
}
