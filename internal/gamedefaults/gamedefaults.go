// Package gamedefaults holds the per-game seed audio configs and the cue
// rewrite rules applied by the hook layer before a cue lookup.
package gamedefaults

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nibzard/ryo-go/internal/mediaconfig"
)

// CueInfo identifies a cue requested by the game.
type CueInfo struct {
	Cue string
	Acb string
}

// CueRewriteFunc maps a requested cue to the cue name used for lookup.
type CueRewriteFunc func(CueInfo) string

// Table maps game ids (case-insensitive) to seed configs and cue rewrites.
// A Table is immutable once built.
type Table struct {
	defaults map[string]mediaconfig.AudioConfig
	rewrites map[string]CueRewriteFunc
}

// NewTable builds a table from the given maps. Keys are folded to lower case.
func NewTable(defaults map[string]mediaconfig.AudioConfig, rewrites map[string]CueRewriteFunc) *Table {
	t := &Table{
		defaults: make(map[string]mediaconfig.AudioConfig, len(defaults)),
		rewrites: make(map[string]CueRewriteFunc, len(rewrites)),
	}
	for game, cfg := range defaults {
		t.defaults[normalizeGame(game)] = cfg.Clone()
	}
	for game, fn := range rewrites {
		t.rewrites[normalizeGame(game)] = fn
	}
	return t
}

// DefaultConfig returns a copy of the seed config for game, or an empty config.
func (t *Table) DefaultConfig(game string) mediaconfig.AudioConfig {
	if t == nil {
		return mediaconfig.AudioConfig{}
	}
	if cfg, ok := t.defaults[normalizeGame(game)]; ok {
		return cfg.Clone()
	}
	return mediaconfig.AudioConfig{}
}

// CueRewrite returns the cue rewrite for game, or nil if it has none.
func (t *Table) CueRewrite(game string) CueRewriteFunc {
	if t == nil {
		return nil
	}
	return t.rewrites[normalizeGame(game)]
}

// Games returns the game ids with a seed config, sorted.
func (t *Table) Games() []string {
	if t == nil {
		return nil
	}
	games := make([]string, 0, len(t.defaults))
	for game := range t.defaults {
		games = append(games, game)
	}
	slices.Sort(games)
	return games
}

func normalizeGame(game string) string {
	return strings.ToLower(strings.TrimSpace(game))
}

// Default returns the built-in table of known games.
func Default() *Table {
	return NewTable(
		map[string]mediaconfig.AudioConfig{
			"p5r": {
				UsePlayerVolume: mediaconfig.Ptr(true),
			},
			"p4g": {},
			"p3r": {
				AcbName: mediaconfig.Ptr("bgm"),
				Volume:  mediaconfig.Ptr(0.15),
			},
			"SMT5V-Win64-Shipping": {
				AcbName: mediaconfig.Ptr("bgm"),
				Volume:  mediaconfig.Ptr(0.35),
			},
			"likeadragon8": {
				CategoryIDs: []int{11},
				Volume:      mediaconfig.Ptr(0.35),
			},
			"likeadragongaiden": {
				CategoryIDs: []int{11},
				Volume:      mediaconfig.Ptr(0.35),
			},
			"LostJudgment": {
				CategoryIDs: []int{11},
				Volume:      mediaconfig.Ptr(0.35),
			},
			"RainCodePlus-Win64-Shipping": {
				Volume: mediaconfig.Ptr(0.35),
			},
		},
		map[string]CueRewriteFunc{
			"p5r": rewriteP5R,
			"p3r": rewriteP3R,
		},
	)
}

func rewriteP5R(info CueInfo) string {
	if info.Acb == "bgm" {
		return strings.ReplaceAll(info.Cue, "link", "bgm")
	}
	return info.Cue
}

// p3rVictoryIDs are the battle themes that have a Sound_Result_NN cue.
var p3rVictoryIDs = []int{5, 11, 27, 37, 44}

// rewriteP3R maps link_<id> cues in the bgm bank onto the game's named cues.
// 1000-1999 are Sound_NN (or Sound_Result_NN for victory themes),
// 2000 and up are EA_Sound_NN.
func rewriteP3R(info CueInfo) string {
	if info.Acb != "bgm" {
		return info.Cue
	}

	parts := strings.Split(info.Cue, "_")
	if len(parts) == 2 {
		if bgmID, err := strconv.Atoi(parts[1]); err == nil {
			switch {
			case bgmID >= 1000 && bgmID < 2000:
				adjusted := bgmID - 1000
				if i := slices.Index(p3rVictoryIDs, adjusted); i >= 0 {
					return fmt.Sprintf("Sound_Result_%02d", i+1)
				}
				return fmt.Sprintf("Sound_%02d", adjusted)
			case bgmID >= 2000:
				return fmt.Sprintf("EA_Sound_%02d", bgmID-2000)
			}
		}
	}

	return strings.ReplaceAll(info.Cue, "link_", "")
}
