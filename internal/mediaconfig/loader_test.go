package mediaconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadAudioYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boss.yaml")
	writeFile(t, path, `
cue_name: boss
acb_name: bgm
volume: 0.5
category_ids: [1, 8]
playback_mode: sequential
format: HCA
is_enabled: false
`)

	cfg, err := Loader{}.LoadAudio(path)
	if err != nil {
		t.Fatalf("LoadAudio: %v", err)
	}
	if got := Deref(cfg.CueName, ""); got != "boss" {
		t.Errorf("CueName: got %q, want boss", got)
	}
	if got := Deref(cfg.Volume, 0); got != 0.5 {
		t.Errorf("Volume: got %v, want 0.5", got)
	}
	if len(cfg.CategoryIDs) != 2 || cfg.CategoryIDs[1] != 8 {
		t.Errorf("CategoryIDs: got %v, want [1 8]", cfg.CategoryIDs)
	}
	if got := Deref(cfg.PlaybackMode, PlaybackRandom); got != PlaybackSequential {
		t.Errorf("PlaybackMode: got %v, want sequential", got)
	}
	if got := Deref(cfg.Format, 0); got != FormatHCA {
		t.Errorf("Format: got %v, want hca", got)
	}
	if got := Deref(cfg.IsEnabled, true); got {
		t.Error("IsEnabled: got true, want false")
	}
	if cfg.SampleRate != nil {
		t.Errorf("SampleRate should be unset, got %v", *cfg.SampleRate)
	}
}

func TestLoadAudioYAMLNumericIdentity(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "theme.yaml")
	writeFile(t, audio, "cue_name: 1234\nacb_name: 7\ngroup_id: 7\nshared_container_id: 99\n")

	cfg, err := Loader{}.LoadAudio(audio)
	if err != nil {
		t.Fatalf("LoadAudio: %v", err)
	}
	if got := Deref(cfg.CueName, ""); got != "1234" {
		t.Errorf("CueName: got %q, want 1234", got)
	}
	if got := Deref(cfg.AcbName, ""); got != "7" {
		t.Errorf("AcbName: got %q, want 7", got)
	}
	if got := Deref(cfg.GroupID, ""); got != "7" {
		t.Errorf("GroupID: got %q, want 7", got)
	}
	if got := Deref(cfg.SharedContainerID, ""); got != "99" {
		t.Errorf("SharedContainerID: got %q, want 99", got)
	}

	movie := filepath.Join(dir, "op.yaml")
	writeFile(t, movie, "target_movie_path: 100\ngroup_id: 3\n")
	mcfg, err := Loader{}.LoadMovie(movie)
	if err != nil {
		t.Fatalf("LoadMovie: %v", err)
	}
	if got := Deref(mcfg.TargetMoviePath, ""); got != "100" {
		t.Errorf("TargetMoviePath: got %q, want 100", got)
	}
	if got := Deref(mcfg.GroupID, ""); got != "3" {
		t.Errorf("GroupID: got %q, want 3", got)
	}
}

func TestLoadAudioTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
group_id = "battle"
volume = 1
tags = ["loud"]
`)

	cfg, err := Loader{}.LoadAudio(path)
	if err != nil {
		t.Fatalf("LoadAudio: %v", err)
	}
	if got := Deref(cfg.GroupID, ""); got != "battle" {
		t.Errorf("GroupID: got %q, want battle", got)
	}
	if got := Deref(cfg.Volume, 0); got != 1 {
		t.Errorf("Volume: got %v, want 1", got)
	}
	if len(cfg.Tags) != 1 || cfg.Tags[0] != "loud" {
		t.Errorf("Tags: got %v", cfg.Tags)
	}
}

func TestLoadAudioEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	writeFile(t, path, "")

	cfg, err := Loader{}.LoadAudio(path)
	if err != nil {
		t.Fatalf("LoadAudio: %v", err)
	}
	if cfg.CueName != nil || cfg.Volume != nil {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadAudioMalformed(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantPath string
	}{
		{"bad yaml", "bad.yaml", "cue_name: [unterminated", ""},
		{"unknown key", "unknown.yaml", "cue_nme: boss\n", ""},
		{"wrong type", "type.yaml", "volume: loud\n", "volume"},
		{"bad category item", "cats.yaml", "category_ids: [1, x]\n", "category_ids[1]"},
		{"bad format", "fmt.yaml", "format: ogg\n", "format"},
		{"bad toml", "bad.toml", "volume = = 1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := Loader{}.LoadAudio(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedConfig) {
				t.Errorf("expected ErrMalformedConfig, got %v", err)
			}
			if tt.wantPath != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if ve.Path != tt.wantPath {
					t.Errorf("Path: got %q, want %q", ve.Path, tt.wantPath)
				}
			}
		})
	}
}

func TestLoadAudioMissingFile(t *testing.T) {
	_, err := Loader{}.LoadAudio(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrMalformedConfig) {
		t.Errorf("expected ErrMalformedConfig, got %v", err)
	}
}

func TestLoadMovie(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "op.yaml")
	writeFile(t, good, "target_movie_path: movie/op.usm\ngroup_id: intro\n")

	cfg, err := Loader{}.LoadMovie(good)
	if err != nil {
		t.Fatalf("LoadMovie: %v", err)
	}
	if got := Deref(cfg.TargetMoviePath, ""); got != "movie/op.usm" {
		t.Errorf("TargetMoviePath: got %q", got)
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "cue_name: boss\n")
	if _, err := (Loader{}).LoadMovie(bad); !errors.Is(err, ErrMalformedConfig) {
		t.Errorf("audio keys in movie config: expected ErrMalformedConfig, got %v", err)
	}
}

func TestConfigPaths(t *testing.T) {
	dir := t.TempDir()
	if got := FolderConfigPath(dir); got != "" {
		t.Errorf("FolderConfigPath on empty dir: got %q", got)
	}

	writeFile(t, filepath.Join(dir, "config.toml"), "")
	if got := FolderConfigPath(dir); !strings.HasSuffix(got, "config.toml") {
		t.Errorf("FolderConfigPath: got %q, want config.toml", got)
	}
	writeFile(t, filepath.Join(dir, "config.yaml"), "")
	if got := FolderConfigPath(dir); !strings.HasSuffix(got, "config.yaml") {
		t.Errorf("FolderConfigPath: yaml should win, got %q", got)
	}

	media := filepath.Join(dir, "boss.hca")
	writeFile(t, media, "")
	if got := FileConfigPath(media); got != "" {
		t.Errorf("FileConfigPath without sidecar: got %q", got)
	}
	writeFile(t, filepath.Join(dir, "boss.yml"), "")
	if got := FileConfigPath(media); !strings.HasSuffix(got, "boss.yml") {
		t.Errorf("FileConfigPath: got %q, want boss.yml", got)
	}

	if !IsConfigFile("a/B.YAML") || IsConfigFile("a/b.hca") {
		t.Error("IsConfigFile misclassified")
	}
}
