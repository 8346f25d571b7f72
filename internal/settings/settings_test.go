package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestInstallHook_PreservesUnrelatedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	existing := `{
  "model": "sonnet",
  "permissions": {"allow": ["Bash(go test:*)"]},
  "hooks": {"PreToolUse": [{"matcher": "Bash", "hooks": []}]}
}`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	installed, err := InstallHook(path, "/opt/ccjournal/hook.sh")
	if err != nil {
		t.Fatalf("InstallHook() error: %v", err)
	}
	if !installed {
		t.Fatal("expected hook to be installed")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}

	if settings["model"] != "sonnet" {
		t.Errorf("model key lost: %v", settings["model"])
	}
	if _, ok := settings["permissions"]; !ok {
		t.Error("permissions key lost")
	}
	hooks := settings["hooks"].(map[string]any)
	if _, ok := hooks["PreToolUse"]; !ok {
		t.Error("unrelated hook event lost")
	}
	if entries := hooks["PostToolUse"].([]any); len(entries) != 1 {
		t.Errorf("PostToolUse entries = %d, want 1", len(entries))
	}
}

func TestInstallHook_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	if installed, err := InstallHook(path, "/opt/hook.sh"); err != nil || !installed {
		t.Fatalf("first install = %v, %v", installed, err)
	}
	if installed, err := InstallHook(path, "/opt/hook.sh"); err != nil || installed {
		t.Fatalf("second install = %v, %v; want already-installed no-op", installed, err)
	}

	data, _ := os.ReadFile(path)
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		t.Fatal(err)
	}
	entries := settings["hooks"].(map[string]any)["PostToolUse"].([]any)
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1 after repeat install", len(entries))
	}
}

func TestInstallHook_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	if installed, err := InstallHook(path, "/opt/hook.sh"); err != nil || !installed {
		t.Fatalf("install into missing file = %v, %v", installed, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings file not created: %v", err)
	}
}

func TestInstallHook_RejectsMalformedSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := InstallHook(path, "/opt/hook.sh"); err == nil {
		t.Error("malformed settings should fail rather than be overwritten")
	}
}
