package registry

import (
	"path"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// CueKey identifies a cue in a bank. Compare keys built with NewCueKey only.
type CueKey struct {
	Cue string
	Acb string
}

// NewCueKey builds a case-insensitive cue key.
func NewCueKey(cue, acb string) CueKey {
	return CueKey{Cue: fold(cue), Acb: fold(acb)}
}

// PathKey is a case-insensitive, slash-separated path.
type PathKey string

// NewPathKey normalises p: backslashes become slashes, the path is cleaned,
// a leading "./" or "/" is dropped and the result is case-folded.
func NewPathKey(p string) PathKey {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return PathKey(fold(p))
}

// NameKey is a case-insensitive name, used for audio data names.
type NameKey string

// NewNameKey builds a case-insensitive name key.
func NewNameKey(name string) NameKey {
	return NameKey(fold(name))
}

// folders holds reusable Casers; a Caser is not safe for concurrent use.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// fold case-folds s.
func fold(s string) string {
	c := folders.Get().(*cases.Caser)
	defer folders.Put(c)
	return c.String(s)
}
