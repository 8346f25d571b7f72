package core

import (
	"path/filepath"
	"strings"
)

// skipDirs are path components that never identify a project.
var skipDirs = map[string]bool{
	"Users":     true,
	"home":      true,
	"Desktop":   true,
	"Documents": true,
	"Projects":  true,
	"Code":      true,
	"dev":       true,
	"Volumes":   true,
}

// ProjectName derives a short project name from a working-directory path by
// walking components from the tail and skipping generic prefixes and
// dot-directories.
func ProjectName(cwd string) string {
	if cwd == "" {
		return "unknown"
	}
	parts := strings.Split(filepath.ToSlash(cwd), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if part == "" || skipDirs[part] || strings.HasPrefix(part, ".") {
			continue
		}
		return part
	}
	if base := filepath.Base(cwd); base != "" && base != "." && base != string(filepath.Separator) {
		return base
	}
	return "unknown"
}
