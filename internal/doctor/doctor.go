// Package doctor runs runtime readiness diagnostics for config, audio, ASR, and storage.
package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/voxboard/voxboard/internal/audio"
	"github.com/voxboard/voxboard/internal/config"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(cfg config.Loaded) Report {
	checks := []Check{}

	configMessage := fmt.Sprintf("loaded %q", cfg.Path)
	if !cfg.Exists {
		configMessage = fmt.Sprintf("%q not found, using defaults", cfg.Path)
	}
	checks = append(checks, Check{
		Name:    "config",
		Pass:    true,
		Message: configMessage,
	})

	checks = append(checks, checkASREndpoint(cfg.Config))
	checks = append(checks, checkAudioSelection(cfg.Config))
	checks = append(checks, checkStoreWritable(cfg.Config))

	if cfg.Config.Indicator.Enable {
		checks = append(checks, checkBinary("busctl", "desktop notifications require busctl"))
	}
	if len(cfg.Config.Indicator.PlayCmd.Argv) > 0 {
		checks = append(checks, checkCommand(cfg.Config.Indicator.PlayCmd.Argv, "indicator.play_cmd"))
	}

	return Report{Checks: checks}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkAudioSelection runs live device selection to surface selection/fallback issues.
func checkAudioSelection(cfg config.Config) Check {
	selection, err := audio.SelectDevice(context.Background(), cfg.Audio.Input, cfg.Audio.Fallback)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.device", Pass: true, Message: message}
}

// checkASREndpoint probes the configured transcription endpoint. Any HTTP
// response counts as reachable, auth and routing are the server's business.
func checkASREndpoint(cfg config.Config) Check {
	base := strings.TrimSpace(cfg.ASR.BaseURL)
	if base == "" {
		if strings.TrimSpace(cfg.ASR.APIKey) != "" {
			return Check{Name: "asr.endpoint", Pass: true, Message: "using provider default endpoint with API key"}
		}
		return Check{Name: "asr.endpoint", Pass: false, Message: "asr.base_url and asr.api_key are both unset"}
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(base)
	if err != nil {
		return Check{Name: "asr.endpoint", Pass: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	return Check{Name: "asr.endpoint", Pass: true, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, base)}
}

// checkStoreWritable verifies the widget snapshot directory accepts writes.
func checkStoreWritable(cfg config.Config) Check {
	path, err := config.ResolveStorePath(cfg)
	if err != nil {
		return Check{Name: "store.path", Pass: false, Message: err.Error()}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Check{Name: "store.path", Pass: false, Message: fmt.Sprintf("create %q: %v", dir, err)}
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return Check{Name: "store.path", Pass: false, Message: fmt.Sprintf("directory not writable: %v", err)}
	}
	probe.Close()
	os.Remove(probe.Name())

	return Check{Name: "store.path", Pass: true, Message: fmt.Sprintf("writable at %q", path)}
}
