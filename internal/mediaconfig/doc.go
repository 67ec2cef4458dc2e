// Package mediaconfig defines the audio and movie configuration objects that
// are layered while media folders are scanned.
//
// Every field is optional. Layers are applied in order:
// 1. Game defaults
// 2. Folder configs (config.yaml), outermost folder first
// 3. The sibling config of a single media file (<name>.yaml)
//
// A layer overrides a field only when it sets it, so a folder that does not
// mention volume keeps the game default volume.
//
// Config files may be YAML (.yaml, .yml) or TOML (.toml). Documents are checked
// against an embedded JSON schema before they are decoded.
package mediaconfig
