package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/agenda/internal/config"
	"github.com/amonks/agenda/internal/testsupport"
)

func writeGlobalConfig(t *testing.T, homeDir, content string) {
	t.Helper()

	path := filepath.Join(homeDir, ".config", "agenda", "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, config.ProjectFile), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.Log != "" {
		t.Error("expected empty Log")
	}

	if cfg.Display.Interactive || cfg.Display.Width != 0 {
		t.Errorf("expected zero display config, got %+v", cfg.Display)
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
log = "plans/agenda.yaml"

[display]
interactive = true
width = 72
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if want := filepath.Join(tmpDir, "plans", "agenda.yaml"); cfg.Log != want {
		t.Errorf("Log = %q, expected %q", cfg.Log, want)
	}
	if !cfg.Display.Interactive {
		t.Error("expected Interactive")
	}
	if cfg.Display.Width != 72 {
		t.Errorf("Width = %d, expected 72", cfg.Display.Width)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `this is not valid toml [`)

	_, err := config.Load(tmpDir)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[display]
colour = "blue"
`)

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoad_NegativeWidth(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[display]
width = -1
`)

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for negative width")
	}
}

func TestLoad_UsesGlobalWhenProjectMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
log = "~/notes/agenda.yaml"

[display]
width = 100
`)

	repoDir := t.TempDir()
	cfg, err := config.Load(repoDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if want := filepath.Join(homeDir, "notes", "agenda.yaml"); cfg.Log != want {
		t.Errorf("Log = %q, expected %q", cfg.Log, want)
	}
	if cfg.Display.Width != 100 {
		t.Errorf("Width = %d, expected 100", cfg.Display.Width)
	}
}

func TestLoad_GlobalRelativeLogResolvesAgainstConfigDir(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `log = "agenda.yaml"`)

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if want := filepath.Join(homeDir, ".config", "agenda", "agenda.yaml"); cfg.Log != want {
		t.Errorf("Log = %q, expected %q", cfg.Log, want)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
log = "/global/agenda.yaml"

[display]
interactive = true
width = 100
`)

	repoDir := t.TempDir()
	writeProjectConfig(t, repoDir, `
log = "/project/agenda.yaml"

[display]
width = 60
`)

	cfg, err := config.Load(repoDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log != "/project/agenda.yaml" {
		t.Errorf("Log = %q, expected %q", cfg.Log, "/project/agenda.yaml")
	}
	if !cfg.Display.Interactive {
		t.Error("expected global Interactive to survive")
	}
	if cfg.Display.Width != 60 {
		t.Errorf("Width = %d, expected 60", cfg.Display.Width)
	}
}

func TestLoad_ProjectEmptyOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
log = "/global/agenda.yaml"

[display]
interactive = true
width = 100
`)

	repoDir := t.TempDir()
	writeProjectConfig(t, repoDir, `
log = ""

[display]
interactive = false
width = 0
`)

	cfg, err := config.Load(repoDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log != "" {
		t.Errorf("Log = %q, expected empty string", cfg.Log)
	}
	if cfg.Display.Interactive {
		t.Error("expected project to disable Interactive")
	}
	if cfg.Display.Width != 0 {
		t.Errorf("Width = %d, expected 0", cfg.Display.Width)
	}
}

func TestLogPath(t *testing.T) {
	testsupport.SetupTestHome(t)
	dir := t.TempDir()

	cfg := &config.Config{Log: "/configured/agenda.yaml"}

	if got := cfg.LogPath("/flag/agenda.yaml", dir, "agenda.yaml"); got != "/flag/agenda.yaml" {
		t.Errorf("flag: got %q", got)
	}

	t.Setenv(config.LogEnvVar, "/env/agenda.yaml")
	if got := cfg.LogPath("", dir, "agenda.yaml"); got != "/env/agenda.yaml" {
		t.Errorf("env: got %q", got)
	}

	t.Setenv(config.LogEnvVar, "")
	if got := cfg.LogPath("", dir, "agenda.yaml"); got != "/configured/agenda.yaml" {
		t.Errorf("config: got %q", got)
	}

	empty := &config.Config{}
	if got, want := empty.LogPath("", dir, "agenda.yaml"), filepath.Join(dir, "agenda.yaml"); got != want {
		t.Errorf("default: got %q, want %q", got, want)
	}
}
