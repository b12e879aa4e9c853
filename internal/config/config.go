// Package config handles loading agenda.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/agenda/internal/paths"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "agenda.toml"

// LogEnvVar overrides the configured log path.
const LogEnvVar = "AGENDA_LOG"

// Config represents the agenda.toml configuration file.
type Config struct {
	// Log is the path of the action log. Relative paths are resolved
	// against the directory of the file that set them.
	Log string `toml:"log"`

	Display Display `toml:"display"`
}

// Display contains output-related configuration.
type Display struct {
	// Interactive makes `list` open the interactive view by default.
	Interactive bool `toml:"interactive"`
	// Width caps the wrap width of detail output. Zero means terminal width.
	Width int `toml:"width"`
}

// Load loads configuration from dir and the global config file.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

// LogPath picks the action log location. An explicit flag value wins, then
// AGENDA_LOG, then the configured path, then agenda.yaml in dir.
func (c *Config) LogPath(flagValue, dir, defaultName string) string {
	if value := strings.TrimSpace(flagValue); value != "" {
		return value
	}
	if value := strings.TrimSpace(os.Getenv(LogEnvVar)); value != "" {
		return value
	}
	if c != nil && c.Log != "" {
		return c.Log
	}
	return filepath.Join(dir, defaultName)
}

func globalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Display.Width < 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: display.width must not be negative", path)
	}

	cfg.Log = paths.Resolve(filepath.Dir(path), cfg.Log)
	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Log = mergeString(projectMeta.IsDefined("log"), projectCfg.Log, globalCfg.Log)
	merged.Display.Interactive = globalCfg.Display.Interactive
	if projectMeta.IsDefined("display", "interactive") {
		merged.Display.Interactive = projectCfg.Display.Interactive
	}
	merged.Display.Width = globalCfg.Display.Width
	if projectMeta.IsDefined("display", "width") {
		merged.Display.Width = projectCfg.Display.Width
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
