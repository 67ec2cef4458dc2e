// Package utils holds small helpers shared by the config and media packages.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s by any of the runes in seps and trims each part.
// Empty parts are dropped.
func SplitAndTrim(s, seps string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JSONPointerToPath turns a JSON pointer such as "#/category_ids/1" into the
// dotted form "category_ids[1]" used in config error messages.
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		// ~1 is "/" and ~0 is "~"; order matters.
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")
		if token == "" {
			continue
		}
		if idx, err := strconv.Atoi(token); err == nil {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(idx))
			b.WriteByte(']')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}
