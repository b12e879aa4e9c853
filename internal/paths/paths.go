// Package paths locates agenda's files on disk.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// DefaultConfigDir returns ~/.config/agenda.
func DefaultConfigDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "agenda"), nil
}

// Resolve expands a leading "~/" and joins relative paths onto base.
// Blank values stay blank.
func Resolve(base, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(value, "~/"); ok {
		if home, err := HomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(base, value)
}
