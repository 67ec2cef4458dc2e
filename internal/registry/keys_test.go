package registry

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewCueKeyCaseInsensitive(t *testing.T) {
	if NewCueKey("Boss", "BGM") != NewCueKey("boss", "bgm") {
		t.Error("cue keys should ignore case")
	}
	if NewCueKey("boss", "bgm") == NewCueKey("boss", "se") {
		t.Error("different banks must not collide")
	}
}

func TestNewPathKey(t *testing.T) {
	tests := []struct {
		in   string
		want PathKey
	}{
		{"sound/BGM/Title.wav", "sound/bgm/title.wav"},
		{"sound\\bgm\\title.wav", "sound/bgm/title.wav"},
		{"./sound//bgm/title.wav", "sound/bgm/title.wav"},
		{"/movie/op.usm", "movie/op.usm"},
		{"", ""},
		{".", ""},
	}
	for _, tt := range tests {
		if got := NewPathKey(tt.in); got != tt.want {
			t.Errorf("NewPathKey(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewNameKey(t *testing.T) {
	if NewNameKey("Voice_01") != NewNameKey("VOICE_01") {
		t.Error("name keys should ignore case")
	}
}

func TestFoldConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 200 {
				in := fmt.Sprintf("Cue_%d_STRASSE_%d", i, j)
				want := fmt.Sprintf("cue_%d_strasse_%d", i, j)
				if got := fold(in); got != want {
					t.Errorf("fold(%q) = %q, want %q", in, got, want)
					return
				}
			}
		}()
	}
	wg.Wait()

	if fold("Straße") != fold("STRASSE") {
		t.Error("fold should apply full case folding")
	}
}
