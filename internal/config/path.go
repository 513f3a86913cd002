package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath applies CLI/XDG/home fallback rules for config.conf location.
func ResolvePath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "voxboard", "config.conf"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for config fallback")
	}

	return filepath.Join(home, ".config", "voxboard", "config.conf"), nil
}

// ResolveStorePath returns the widget snapshot location, defaulting to the
// XDG state directory when store.path is unset.
func ResolveStorePath(cfg Config) (string, error) {
	if path := strings.TrimSpace(cfg.Store.Path); path != "" {
		return path, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); xdg != "" {
		return filepath.Join(xdg, "voxboard", "widgets.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for widget store fallback")
	}

	return filepath.Join(home, ".local", "state", "voxboard", "widgets.json"), nil
}
