package mediaconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// FolderConfigName is the base name of a config applied to a whole folder.
const FolderConfigName = "config"

// ErrMalformedConfig is returned when a config file cannot be read, parsed,
// or fails schema validation.
var ErrMalformedConfig = errors.New("malformed config")

// configExts lists the recognised config extensions in lookup order.
var configExts = []string{".yaml", ".yml", ".toml"}

// IsConfigFile reports whether path has a config file extension.
func IsConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range configExts {
		if ext == e {
			return true
		}
	}
	return false
}

// FolderConfigPath returns the config file applying to dir, or "" if none exists.
func FolderConfigPath(dir string) string {
	return firstExisting(filepath.Join(dir, FolderConfigName))
}

// FileConfigPath returns the sibling config of a media file, or "" if none exists.
func FileConfigPath(file string) string {
	return firstExisting(strings.TrimSuffix(file, filepath.Ext(file)))
}

func firstExisting(stem string) string {
	for _, ext := range configExts {
		candidate := stem + ext
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate
		}
	}
	return ""
}

// Loader reads audio and movie config files from disk.
type Loader struct{}

// LoadAudio reads and validates an audio config file.
func (Loader) LoadAudio(path string) (AudioConfig, error) {
	var cfg AudioConfig
	schema, err := audioSchema()
	if err != nil {
		return cfg, err
	}
	if err := decodeFile(path, schema, &cfg); err != nil {
		return AudioConfig{}, err
	}
	return cfg, nil
}

// LoadMovie reads and validates a movie config file.
func (Loader) LoadMovie(path string) (MovieConfig, error) {
	var cfg MovieConfig
	schema, err := movieSchema()
	if err != nil {
		return cfg, err
	}
	if err := decodeFile(path, schema, &cfg); err != nil {
		return MovieConfig{}, err
	}
	return cfg, nil
}

func decodeFile(path string, schema *jsonschema.Schema, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedConfig, path, err)
	}

	isTOML := strings.EqualFold(filepath.Ext(path), ".toml")

	var doc interface{}
	if isTOML {
		var table map[string]interface{}
		if _, err := toml.Decode(string(data), &table); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedConfig, path, err)
		}
		doc = table
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedConfig, path, err)
	}

	if err := validateDocument(schema, doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedConfig, path, err)
	}

	if isTOML {
		_, err = toml.Decode(string(data), out)
	} else {
		err = yaml.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedConfig, path, err)
	}
	return nil
}
