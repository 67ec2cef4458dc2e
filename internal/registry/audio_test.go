package registry

import (
	"errors"
	"testing"

	"github.com/nibzard/ryo-go/internal/container"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
)

func TestAudioRegistryClassification(t *testing.T) {
	r := NewAudioRegistry()

	file, err := r.AddOrGetContainer(mediaconfig.AudioConfig{
		AudioFilePath: mediaconfig.Ptr("sound/bgm/title.wav"),
		CueName:       mediaconfig.Ptr("ignored"),
	})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if file.Kind() != container.KindFile {
		t.Errorf("file path should win over cue name, got %v", file.Kind())
	}

	data, err := r.AddOrGetContainer(mediaconfig.AudioConfig{
		AudioDataName: mediaconfig.Ptr("voice_001"),
		CueName:       mediaconfig.Ptr("ignored"),
	})
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	if data.Kind() != container.KindData {
		t.Errorf("data name should win over cue name, got %v", data.Kind())
	}

	cue, err := r.AddOrGetContainer(mediaconfig.AudioConfig{CueName: mediaconfig.Ptr("boss"), AcbName: mediaconfig.Ptr("bgm")})
	if err != nil {
		t.Fatalf("cue: %v", err)
	}
	if cue.Kind() != container.KindCue {
		t.Errorf("expected cue container, got %v", cue.Kind())
	}

	for _, c := range []*container.AudioContainer{file, data, cue} {
		c.AddAudio(container.Audio{Path: c.Name() + ".hca"})
	}

	if got, ok := r.TryGetFileContainer("Sound\\BGM\\Title.wav"); !ok || got != file {
		t.Error("TryGetFileContainer should match normalised path")
	}
	if got, ok := r.TryGetDataContainer("VOICE_001"); !ok || got != data {
		t.Error("TryGetDataContainer should ignore case")
	}
	if got, ok := r.TryGetCueContainer("BOSS", "Bgm"); !ok || got != cue {
		t.Error("TryGetCueContainer should ignore case")
	}
	if _, ok := r.TryGetCueContainer("boss", "se"); ok {
		t.Error("cue in another bank should miss")
	}

	stats := r.Stats()
	if stats.Cues != 1 || stats.Files != 1 || stats.Data != 1 || stats.Containers != 3 {
		t.Errorf("Stats: got %+v", stats)
	}
	if len(r.Files()) != 3 {
		t.Errorf("Files: got %v", r.Files())
	}
}

func TestAudioRegistryMissingIdentity(t *testing.T) {
	r := NewAudioRegistry()
	tests := []mediaconfig.AudioConfig{
		{},
		{CueName: mediaconfig.Ptr("")},
		{AudioFilePath: mediaconfig.Ptr("")},
		{AudioDataName: mediaconfig.Ptr("")},
	}
	for i, cfg := range tests {
		if _, err := r.AddOrGetContainer(cfg); !errors.Is(err, container.ErrMissingIdentity) {
			t.Errorf("case %d: expected ErrMissingIdentity, got %v", i, err)
		}
	}
}

func TestAudioRegistryGroupToggle(t *testing.T) {
	r := NewAudioRegistry()
	base := mediaconfig.AudioConfig{CueName: mediaconfig.Ptr("boss"), AcbName: mediaconfig.Ptr("bgm")}

	fallback, _ := r.AddOrGetContainer(base)
	grouped := mediaconfig.MergeAudio(base, mediaconfig.AudioConfig{GroupID: mediaconfig.Ptr("g1")})
	override, _ := r.AddOrGetContainer(grouped)
	fileCfg := mediaconfig.AudioConfig{AudioFilePath: mediaconfig.Ptr("a.wav"), GroupID: mediaconfig.Ptr("g1")}
	fileOnly, _ := r.AddOrGetContainer(fileCfg)

	group := r.ContainerGroup("g1")
	if group.Len() != 2 {
		t.Fatalf("group size: got %d, want 2", group.Len())
	}

	if got, _ := r.TryGetCueContainer("boss", "bgm"); got != override {
		t.Fatal("grouped override should win before toggling")
	}

	group.Disable()
	if got, _ := r.TryGetCueContainer("boss", "bgm"); got != fallback {
		t.Error("disabling the group should fall back to the earlier container")
	}
	if _, ok := r.TryGetFileContainer("a.wav"); ok {
		t.Error("disabled file container with no fallback should miss")
	}

	group.Enable()
	if got, _ := r.TryGetFileContainer("a.wav"); got != fileOnly {
		t.Error("enabling the group should restore the file container")
	}
}

func TestAudioRegistryFreeze(t *testing.T) {
	r := NewAudioRegistry()
	r.Freeze()
	_, err := r.AddOrGetContainer(mediaconfig.AudioConfig{AudioDataName: mediaconfig.Ptr("x")})
	if !errors.Is(err, ErrFrozen) {
		t.Errorf("expected ErrFrozen, got %v", err)
	}
}
