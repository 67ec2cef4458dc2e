package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nibzard/ryo-go/internal/container"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
	"github.com/nibzard/ryo-go/internal/registry"
)

// FileContainerDir marks a folder whose descendants replace loose audio files.
// The folder path between the marker and a media file is the replaced file's
// path, so FILE.ryo/sound/title.wav/new.hca replaces "sound/title.wav".
const FileContainerDir = "FILE.ryo"

// AudioScanner registers audio files with an AudioRegistry.
type AudioScanner struct {
	registry *registry.AudioRegistry
	defaults mediaconfig.AudioConfig
	opts     options
}

// NewAudioScanner creates a scanner. defaults is the game's seed config,
// applied under every other layer.
func NewAudioScanner(reg *registry.AudioRegistry, defaults mediaconfig.AudioConfig, opts ...Option) *AudioScanner {
	return &AudioScanner{
		registry: reg,
		defaults: defaults.Clone(),
		opts:     buildOptions(opts),
	}
}

// AddPath registers a folder tree or a single file.
func (s *AudioScanner) AddPath(path string, cfg mediaconfig.AudioConfig) error {
	isDir, err := statPath(path)
	if err != nil {
		s.opts.logger.Error("audio path was not found", "path", path)
		return err
	}
	if isDir {
		return s.AddFolder(path, cfg)
	}
	return s.AddFile(path, cfg)
}

// AddFolder registers every audio file below dir. inherited holds the
// layered config of the enclosing folders.
func (s *AudioScanner) AddFolder(dir string, inherited mediaconfig.AudioConfig) error {
	s.opts.logger.Info("adding folder", "dir", dir)

	cfg := inherited.Clone()
	if path := mediaconfig.FolderConfigPath(dir); path != "" {
		if folderCfg, ok := s.loadConfig(path); ok {
			cfg.Apply(folderCfg)
		}
	}

	ext := filepath.Ext(dir)
	if ext != "" {
		cfg.SharedContainerID = mediaconfig.Ptr(s.opts.newID())
	}
	switch strings.ToLower(ext) {
	case ".acb":
		cfg.AcbName = mediaconfig.Ptr(stem(dir))
	case ".cue":
		cfg.CueName = mediaconfig.Ptr(stem(dir))
	}

	return walkFolder(dir, isAudioFile,
		func(file string) error {
			if err := s.AddFile(file, cfg); err != nil {
				s.opts.logger.Error("failed to add audio file", "file", file, "err", err)
				return err
			}
			return nil
		},
		func(folder string) error {
			return s.AddFolder(folder, cfg)
		},
	)
}

// AddFile registers one audio file. The config is layered as game defaults,
// then inherited, then the file's sibling config.
func (s *AudioScanner) AddFile(file string, inherited mediaconfig.AudioConfig) error {
	cfg := s.defaults.Clone()
	cfg.Apply(inherited)
	if path := mediaconfig.FileConfigPath(file); path != "" {
		if fileCfg, ok := s.loadConfig(path); ok {
			cfg.Apply(fileCfg)
		}
	}

	format, err := mediaconfig.ParseFormat(filepath.Ext(file))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
	}
	cfg.Format = &format

	if target, found := fileContainerTarget(file); found {
		if target == "" {
			return fmt.Errorf("%w: %s sits directly in %s", container.ErrMissingIdentity, file, FileContainerDir)
		}
		cfg.AudioFilePath = &target
	}

	if cfg.AudioFilePath == nil && cfg.AudioDataName == nil && mediaconfig.Deref(cfg.CueName, "") == "" {
		cfg.CueName = mediaconfig.Ptr(CueNameFromFile(file))
	}

	c, err := s.registry.AddOrGetContainer(cfg)
	if err != nil {
		return fmt.Errorf("register %s: %w", file, err)
	}
	c.AddAudio(container.Audio{Path: file, Format: format, Config: cfg})
	s.logConfig(file, cfg)
	return nil
}

func (s *AudioScanner) loadConfig(path string) (mediaconfig.AudioConfig, bool) {
	s.opts.logger.Debug("loading audio config", "file", path)
	cfg, err := s.opts.audioLoader.LoadAudio(path)
	if err != nil {
		s.opts.logger.Error("failed to parse audio config", "file", path, "err", err)
		return mediaconfig.AudioConfig{}, false
	}
	return cfg, true
}

func (s *AudioScanner) logConfig(file string, cfg mediaconfig.AudioConfig) {
	s.opts.logger.Debug("audio config",
		"file", file,
		"cue", notSet(cfg.CueName),
		"acb", notSet(cfg.AcbName),
		"player", notSet(cfg.PlayerID),
		"categories", cfg.CategoryIDs,
		"volume", notSet(cfg.Volume),
		"sample_rate", notSet(cfg.SampleRate),
		"channels", notSet(cfg.NumChannels),
	)
}

func notSet[T any](p *T) any {
	if p == nil {
		return "not set"
	}
	return *p
}

// isAudioFile reports whether path has a recognised audio extension.
func isAudioFile(path string) bool {
	_, err := mediaconfig.ParseFormat(filepath.Ext(path))
	return err == nil
}

// fileContainerTarget returns the folder path between the FILE.ryo marker and
// file, slash separated. found is false when file is not below a marker.
func fileContainerTarget(file string) (target string, found bool) {
	parts := strings.Split(filepath.ToSlash(filepath.Dir(file)), "/")
	for i, part := range parts {
		if strings.EqualFold(part, FileContainerDir) {
			return strings.Join(parts[i+1:], "/"), true
		}
	}
	return "", false
}
