package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableExtensions returns the lowercase executable extensions listed in
// PATHEXT, with a leading dot. A default set is used when PATHEXT is unset.
func ExecutableExtensions() map[string]bool {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	exts := map[string]bool{}
	for _, ext := range SplitAndTrim(pathext, ";") {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	return exts
}

// GameName normalizes a game identifier. Directories and an executable
// extension are stripped so "C:/Games/P5R.exe" and "p5r" name the same game.
// Case is kept; game lookups fold case themselves.
func GameName(input string) string {
	name := strings.TrimSpace(input)
	if name == "" {
		return ""
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := filepath.Ext(name); ext != "" && ExecutableExtensions()[strings.ToLower(ext)] {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
