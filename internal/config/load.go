package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Loaded captures resolved config path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves, reads, parses, and validates the runtime configuration.
func Load(explicitPath string) (Loaded, error) {
	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	base := Default()
	content, err := os.ReadFile(resolvedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := applyEnv(base)
			if _, verr := Validate(cfg); verr != nil {
				return Loaded{}, verr
			}
			return Loaded{
				Path:   resolvedPath,
				Config: cfg,
				Warnings: []Warning{{
					Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
				}},
				Exists: false,
			}, nil
		}
		return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
	}

	cfg, warnings, err := Parse(string(content), base)
	if err != nil {
		return Loaded{}, fmt.Errorf("parse config %q: %w", resolvedPath, err)
	}

	return Loaded{
		Path:     resolvedPath,
		Config:   applyEnv(cfg),
		Warnings: warnings,
		Exists:   true,
	}, nil
}

// applyEnv fills the ASR API key from the environment when the file left it
// unset. The file value wins so a config can pin a key per machine.
func applyEnv(cfg Config) Config {
	if strings.TrimSpace(cfg.ASR.APIKey) != "" {
		return cfg
	}
	for _, name := range []string{"VOXBOARD_ASR_API_KEY", "OPENAI_API_KEY"} {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			cfg.ASR.APIKey = value
			return cfg
		}
	}
	return cfg
}
