package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/ryo-go/internal/gamedefaults"
	"github.com/nibzard/ryo-go/internal/logging"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
	"github.com/nibzard/ryo-go/internal/registry"
	"github.com/nibzard/ryo-go/internal/scanner"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func newEngine(t *testing.T, game string) *Engine {
	t.Helper()
	n := 0
	return New(game, gamedefaults.Default(),
		WithLogger(logging.NewTest(io.Discard)),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func TestEngineCueFolderEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"boss.cue/boss_1.hca": "one",
		"boss.cue/boss_2.hca": "two",
	})
	e := newEngine(t, "p3r")

	if err := e.AddAudioPath(root, mediaconfig.AudioConfig{}); err != nil {
		t.Fatalf("AddAudioPath: %v", err)
	}
	e.Seal()

	c, ok := e.TryGetCueContainer("boss", "bgm")
	if !ok {
		t.Fatal("boss/bgm not found")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	want := []string{
		filepath.Join(root, "boss.cue", "boss_1.hca"),
		filepath.Join(root, "boss.cue", "boss_2.hca"),
	}
	for i := 0; i < 10; i++ {
		got, err := c.SelectMediaPath()
		if err != nil {
			t.Fatalf("SelectMediaPath: %v", err)
		}
		if !slices.Contains(want, got) {
			t.Fatalf("SelectMediaPath = %q, not in pool", got)
		}
	}
}

func TestEngineResolveCueRewrites(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Sound_03.hca": ""})
	e := newEngine(t, "P3R")

	if err := e.AddAudioPath(root, mediaconfig.AudioConfig{}); err != nil {
		t.Fatalf("AddAudioPath: %v", err)
	}
	e.Seal()

	if got := e.RewriteCue("link_1003", "bgm"); got != "Sound_03" {
		t.Errorf("RewriteCue = %q, want Sound_03", got)
	}
	if _, ok := e.TryGetCueContainer("link_1003", "bgm"); ok {
		t.Error("raw lookup should not rewrite")
	}
	if _, ok := e.ResolveCue("link_1003", "bgm"); !ok {
		t.Error("ResolveCue did not find rewritten cue")
	}
}

func TestEngineRewriteCueWithoutRule(t *testing.T) {
	e := newEngine(t, "unknown-game")
	if got := e.RewriteCue("link_1003", "bgm"); got != "link_1003" {
		t.Errorf("RewriteCue = %q, want unchanged", got)
	}
}

func TestEngineNilTable(t *testing.T) {
	e := New("p5r", nil)
	if got := e.RewriteCue("link_01", "bgm"); got != "link_01" {
		t.Errorf("RewriteCue = %q, want unchanged", got)
	}
	if e.Stats() != (registry.Stats{}) {
		t.Errorf("Stats = %+v, want zero", e.Stats())
	}
}

func TestEngineGroupSpansAudioAndMovies(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"audio/config.yaml": "group_id: festival\n",
		"audio/title.hca":   "",
		"audio/field.hca":   "",
		"movies/op.usm":     "",
		"movies/op.yaml":    "group_id: festival\n",
		"movies/ed.usm":     "",
	})
	e := newEngine(t, "p5r")

	if err := e.AddAudioPath(filepath.Join(root, "audio"), mediaconfig.AudioConfig{}); err != nil {
		t.Fatalf("AddAudioPath: %v", err)
	}
	if err := e.AddMoviePath(filepath.Join(root, "movies"), mediaconfig.MovieConfig{}); err != nil {
		t.Fatalf("AddMoviePath: %v", err)
	}
	e.Seal()

	group := e.GetContainerGroup("festival")
	if group.Len() != 3 {
		t.Fatalf("group Len = %d, want 3", group.Len())
	}
	if diff := cmp.Diff([]string{"festival"}, e.GroupIDs()); diff != "" {
		t.Errorf("GroupIDs mismatch (-want +got):\n%s", diff)
	}

	group.Disable()
	if _, ok := e.TryGetCueContainer("title", ""); ok {
		t.Error("disabled audio still returned")
	}
	if _, ok := e.TryGetMovie("op.usm"); ok {
		t.Error("disabled movie still returned")
	}
	if _, ok := e.TryGetMovie("ed.usm"); !ok {
		t.Error("ungrouped movie was disabled")
	}

	group.Enable()
	if _, ok := e.TryGetCueContainer("field", ""); !ok {
		t.Error("re-enabled audio not returned")
	}
}

func TestEngineSealRejectsRegistration(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.hca": ""})
	e := newEngine(t, "p4g")
	e.Seal()
	e.Seal()

	if err := e.AddAudioPath(root, mediaconfig.AudioConfig{}); !errors.Is(err, registry.ErrFrozen) {
		t.Errorf("AddAudioPath err = %v, want ErrFrozen", err)
	}
	if err := e.AddMoviePath(root, mediaconfig.MovieConfig{}); !errors.Is(err, registry.ErrFrozen) {
		t.Errorf("AddMoviePath err = %v, want ErrFrozen", err)
	}
	if err := e.AddMovieBind("op.usm", "x.usm"); !errors.Is(err, registry.ErrFrozen) {
		t.Errorf("AddMovieBind err = %v, want ErrFrozen", err)
	}
	if !e.Sealed() {
		t.Error("Sealed = false")
	}
}

func TestEngineMovieBindAndMediaFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bgm/title.hca": "",
		"movie/op.usm":  "",
	})
	e := newEngine(t, "p4g")

	if err := e.AddAudioPath(filepath.Join(root, "bgm"), mediaconfig.AudioConfig{}); err != nil {
		t.Fatalf("AddAudioPath: %v", err)
	}
	if err := e.AddMovieBind("movie/intro.usm", filepath.Join(root, "movie", "op.usm")); err != nil {
		t.Fatalf("AddMovieBind: %v", err)
	}
	e.Seal()

	c, ok := e.TryGetMovie(`Movie\Intro.usm`)
	if !ok {
		t.Fatal("bound movie not found")
	}
	got, err := c.SelectMediaPath()
	if err != nil || got != filepath.Join(root, "movie", "op.usm") {
		t.Errorf("SelectMediaPath = %q, %v", got, err)
	}

	want := []string{
		filepath.Join(root, "bgm", "title.hca"),
		filepath.Join(root, "movie", "op.usm"),
	}
	if diff := cmp.Diff(want, e.MediaFiles()); diff != "" {
		t.Errorf("MediaFiles mismatch (-want +got):\n%s", diff)
	}
	stats := e.Stats()
	if stats.Cues != 1 || stats.Movies != 1 || stats.Containers != 2 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestEngineMissingPathIsNotFound(t *testing.T) {
	e := newEngine(t, "p5r")
	err := e.AddAudioPath(filepath.Join(t.TempDir(), "gone"), mediaconfig.AudioConfig{})
	if !errors.Is(err, scanner.ErrPathNotFound) {
		t.Errorf("err = %v, want ErrPathNotFound", err)
	}
}

func TestEngineConcurrentLookups(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"boss.cue/a.hca": "",
		"boss.cue/b.hca": "",
		"boss.cue/c.hca": "",
	})
	e := newEngine(t, "p3r")
	if err := e.AddAudioPath(root, mediaconfig.AudioConfig{}); err != nil {
		t.Fatalf("AddAudioPath: %v", err)
	}
	e.Seal()
	group := e.GetContainerGroup("none")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if c, ok := e.TryGetCueContainer("boss", "bgm"); ok {
					if _, err := c.SelectMediaPath(); err != nil {
						t.Errorf("SelectMediaPath: %v", err)
						return
					}
				}
				group.Enable()
			}
		}()
	}
	wg.Wait()
}
