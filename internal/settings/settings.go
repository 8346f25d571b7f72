// Package settings merges the activity hook declaration into the
// assistant's settings file without disturbing unrelated keys. The file is
// treated as an opaque JSON object; only the hooks subtree is touched.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const hookEvent = "PostToolUse"

// InstallHook adds a PostToolUse hook entry running command to the settings
// file at path. Existing keys (model, permissions, MCP servers) are kept
// as-is. Installing the same command twice is a no-op.
func InstallHook(path, command string) (installed bool, err error) {
	settings := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &settings); err != nil {
			return false, fmt.Errorf("settings: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return false, fmt.Errorf("settings: read %s: %w", path, err)
	}

	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		hooks = map[string]any{}
		settings["hooks"] = hooks
	}
	entries, _ := hooks[hookEvent].([]any)

	if hookInstalled(entries, command) {
		return false, nil
	}

	entries = append(entries, map[string]any{
		"matcher": "*",
		"hooks": []any{
			map[string]any{"type": "command", "command": command},
		},
	})
	hooks[hookEvent] = entries

	if err := write(path, settings); err != nil {
		return false, err
	}
	return true, nil
}

func hookInstalled(entries []any, command string) bool {
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		inner, _ := m["hooks"].([]any)
		for _, h := range inner {
			hm, ok := h.(map[string]any)
			if ok && hm["command"] == command {
				return true
			}
		}
	}
	return false
}

func write(path string, settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: create dir: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}
