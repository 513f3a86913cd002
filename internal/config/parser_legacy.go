package config

import (
	"fmt"
	"strconv"
	"strings"
)

// parseLegacy reads the original `key = value` config format, one entry per
// line, with `#` comments and optional single or double quoted values.
func parseLegacy(content string, base Config) (Config, []Warning, error) {
	cfg := base

	for i, rawLine := range strings.Split(content, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rawValue, ok := strings.Cut(line, "=")
		if !ok {
			return Config{}, nil, fmt.Errorf("line %d: expected key = value, got %q", lineNo, line)
		}

		key = strings.TrimSpace(key)
		value, err := unquoteValue(strings.TrimSpace(rawValue))
		if err != nil {
			return Config{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if err := applyLegacyKey(&cfg, key, value); err != nil {
			return Config{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	warnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, warnings, nil
}

func applyLegacyKey(cfg *Config, key string, value string) error {
	switch key {
	case "asr.backend":
		cfg.ASR.Backend = value
	case "asr.base_url":
		cfg.ASR.BaseURL = value
	case "asr.api_key":
		cfg.ASR.APIKey = value
	case "asr.model":
		cfg.ASR.Model = value
	case "asr.timeout_ms":
		return setInt(&cfg.ASR.TimeoutMS, key, value)
	case "audio.input":
		cfg.Audio.Input = value
	case "audio.fallback":
		cfg.Audio.Fallback = value
	case "store.path":
		cfg.Store.Path = value
	case "http.enable":
		return setBool(&cfg.HTTP.Enable, key, value)
	case "http.listen":
		cfg.HTTP.Listen = value
	case "indicator.enable":
		return setBool(&cfg.Indicator.Enable, key, value)
	case "indicator.desktop_app_name":
		cfg.Indicator.DesktopAppName = value
	case "indicator.sound_enable":
		return setBool(&cfg.Indicator.SoundEnable, key, value)
	case "indicator.sound_start_file":
		cfg.Indicator.SoundStartFile = value
	case "indicator.sound_stop_file":
		cfg.Indicator.SoundStopFile = value
	case "indicator.sound_complete_file":
		cfg.Indicator.SoundCompleteFile = value
	case "indicator.sound_cancel_file":
		cfg.Indicator.SoundCancelFile = value
	case "indicator.play_cmd":
		argv, err := parseArgv(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		cfg.Indicator.PlayCmd = CommandConfig{Raw: value, Argv: argv}
	case "indicator.error_timeout_ms":
		return setInt(&cfg.Indicator.ErrorTimeoutMS, key, value)
	case "debug.audio_dump":
		return setBool(&cfg.Debug.EnableAudioDump, key, value)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func setBool(target *bool, key string, value string) error {
	parsed, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return fmt.Errorf("%s expects true or false, got %q", key, value)
	}
	*target = parsed
	return nil
}

func setInt(target *int, key string, value string) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s expects an integer, got %q", key, value)
	}
	*target = parsed
	return nil
}

func unquoteValue(raw string) (string, error) {
	if len(raw) >= 1 && raw[0] == '\'' {
		if len(raw) < 2 || raw[len(raw)-1] != '\'' {
			return "", fmt.Errorf("missing closing single quote in %q", raw)
		}
		return raw[1 : len(raw)-1], nil
	}
	if len(raw) >= 1 && raw[0] == '"' {
		if len(raw) < 2 || raw[len(raw)-1] != '"' {
			return "", fmt.Errorf("missing closing double quote in %q", raw)
		}
		return raw[1 : len(raw)-1], nil
	}
	return raw, nil
}
