package config

import (
	"fmt"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	backend := strings.ToLower(strings.TrimSpace(cfg.ASR.Backend))
	if backend == "" {
		return nil, fmt.Errorf("asr.backend must not be empty")
	}
	if backend != "openai" && backend != "plain" {
		return nil, fmt.Errorf("asr.backend must be one of: openai, plain")
	}
	if backend == "plain" && strings.TrimSpace(cfg.ASR.BaseURL) == "" {
		return nil, fmt.Errorf("asr.base_url must not be empty when asr.backend=plain")
	}
	if cfg.ASR.TimeoutMS < 0 {
		return nil, fmt.Errorf("asr.timeout_ms must be >= 0")
	}
	if strings.TrimSpace(cfg.ASR.BaseURL) == "" && strings.TrimSpace(cfg.ASR.APIKey) == "" {
		warnings = append(warnings, Warning{Message: "asr.base_url and asr.api_key are both unset; transcription will fail until one is configured"})
	}

	if cfg.HTTP.Enable && strings.TrimSpace(cfg.HTTP.Listen) == "" {
		return nil, fmt.Errorf("http.listen must not be empty when http.enable=true")
	}

	if cfg.Indicator.Enable && strings.TrimSpace(cfg.Indicator.DesktopAppName) == "" {
		return nil, fmt.Errorf("indicator.desktop_app_name must not be empty when indicator.enable=true")
	}
	if cfg.Indicator.ErrorTimeoutMS < 0 {
		return nil, fmt.Errorf("indicator.error_timeout_ms must be >= 0")
	}
	if cfg.Indicator.PlayCmd.Raw != "" && len(cfg.Indicator.PlayCmd.Argv) == 0 {
		return nil, fmt.Errorf("indicator.play_cmd is configured but empty")
	}

	return warnings, nil
}
