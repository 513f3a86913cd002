package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/voxboard/voxboard/internal/asr"
	"github.com/voxboard/voxboard/internal/audio"
	"github.com/voxboard/voxboard/internal/config"
	"github.com/voxboard/voxboard/internal/session"
)

// captureClient is the capture surface the pipeline depends on.
type captureClient interface {
	Stop() error
	Chunks() <-chan []byte
	BytesCaptured() int64
	RawPCM() []byte
}

// Transcriber owns one end-to-end capture -> WAV -> ASR pipeline instance.
type Transcriber struct {
	cfg    config.Config
	logger *slog.Logger
	client asr.Client

	selectDevice func(context.Context, string, string) (audio.Selection, error)
	startCapture func(context.Context, audio.Device) (captureClient, error)

	mu      sync.Mutex
	started bool

	selection audio.Selection
	capture   captureClient
	drainDone chan struct{}
}

// NewTranscriber constructs a pipeline transcriber from runtime config.
func NewTranscriber(cfg config.Config, logger *slog.Logger) (*Transcriber, error) {
	client, err := asr.New(asr.Options{
		Backend: cfg.ASR.Backend,
		BaseURL: cfg.ASR.BaseURL,
		APIKey:  cfg.ASR.APIKey,
		Model:   cfg.ASR.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("configure ASR backend: %w", err)
	}

	return &Transcriber{
		cfg:          cfg,
		logger:       logger,
		client:       client,
		selectDevice: audio.SelectDevice,
		startCapture: func(ctx context.Context, device audio.Device) (captureClient, error) {
			return audio.StartCapture(ctx, device)
		},
	}, nil
}

// Start resolves device selection and starts audio capture.
func (t *Transcriber) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return fmt.Errorf("transcriber already started")
	}

	selection, err := t.selectDevice(ctx, t.cfg.Audio.Input, t.cfg.Audio.Fallback)
	if err != nil {
		return errors.Join(session.ErrMicrophoneAccess, err)
	}
	t.selection = selection
	if selection.Warning != "" {
		t.logWarn(selection.Warning)
	}

	capture, err := t.startCapture(ctx, selection.Device)
	if err != nil {
		return errors.Join(session.ErrMicrophoneAccess, err)
	}
	t.capture = capture

	// The full recording accumulates in capture.RawPCM; the chunk channel
	// still has to be drained or capture backpressures and stalls.
	t.drainDone = make(chan struct{})
	go func(c captureClient, done chan struct{}) {
		defer close(done)
		for range c.Chunks() {
		}
	}(capture, t.drainDone)

	t.started = true
	return nil
}

// StopAndTranscribe stops capture and sends the recording to the ASR backend.
func (t *Transcriber) StopAndTranscribe(ctx context.Context) (session.StopResult, error) {
	t.mu.Lock()
	started := t.started
	capture := t.capture
	drainDone := t.drainDone
	selection := t.selection
	t.started = false
	t.capture = nil
	t.drainDone = nil
	t.mu.Unlock()

	if !started || capture == nil {
		return session.StopResult{}, session.ErrPipelineUnavailable
	}

	_ = capture.Stop()
	if drainDone != nil {
		<-drainDone
	}

	rawPCM := capture.RawPCM()
	t.writeDebugAudio(rawPCM)

	result := session.StopResult{
		AudioDevice:   describeDevice(selection.Device),
		BytesCaptured: capture.BytesCaptured(),
	}
	if len(rawPCM) == 0 {
		return result, nil
	}

	asrCtx, cancel := context.WithTimeout(ctx, t.asrTimeout())
	defer cancel()

	sentAt := time.Now()
	text, err := t.client.Transcribe(asrCtx, audio.EncodeWAV(rawPCM))
	result.ASRLatency = time.Since(sentAt)
	if err != nil {
		return result, fmt.Errorf("recognize speech: %w", err)
	}

	result.Transcript = text
	return result, nil
}

// Cancel stops capture immediately without sending anything to the ASR backend.
func (t *Transcriber) Cancel(_ context.Context) error {
	t.mu.Lock()
	capture := t.capture
	drainDone := t.drainDone
	t.started = false
	t.capture = nil
	t.drainDone = nil
	t.mu.Unlock()

	if capture != nil {
		_ = capture.Stop()
		if drainDone != nil {
			<-drainDone
		}
		t.writeDebugAudio(capture.RawPCM())
	}
	return nil
}

func (t *Transcriber) asrTimeout() time.Duration {
	if t.cfg.ASR.TimeoutMS > 0 {
		return time.Duration(t.cfg.ASR.TimeoutMS) * time.Millisecond
	}
	return 20 * time.Second
}

// describeDevice formats device metadata for logs/session results.
func describeDevice(device audio.Device) string {
	description := strings.TrimSpace(device.Description)
	id := strings.TrimSpace(device.ID)
	if description == "" {
		return id
	}
	if id == "" {
		return description
	}
	return fmt.Sprintf("%s (%s)", description, id)
}

// logWarn emits warning-level logs when logger is configured.
func (t *Transcriber) logWarn(message string) {
	if t.logger == nil {
		return
	}
	t.logger.Warn(message)
}

// writeDebugAudio writes the recording to WAV when debug.audio_dump is enabled.
func (t *Transcriber) writeDebugAudio(rawPCM []byte) {
	if !t.cfg.Debug.EnableAudioDump || len(rawPCM) == 0 {
		return
	}

	file, err := createDebugFile("audio", "wav")
	if err != nil {
		t.logWarn(fmt.Sprintf("unable to create debug audio dump: %v", err))
		return
	}
	defer file.Close()

	if _, err := file.Write(audio.EncodeWAV(rawPCM)); err != nil {
		t.logWarn(fmt.Sprintf("unable to write debug audio dump: %v", err))
	}
}

// createDebugFile creates timestamped debug artifacts under state/voxboard/debug.
func createDebugFile(prefix string, extension string) (*os.File, error) {
	stateDir, err := resolveStateDir()
	if err != nil {
		return nil, err
	}
	debugDir := filepath.Join(stateDir, "voxboard", "debug")
	if err := os.MkdirAll(debugDir, 0o700); err != nil {
		return nil, fmt.Errorf("create debug dir: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405.000")
	path := filepath.Join(debugDir, fmt.Sprintf("%s-%s.%s", prefix, timestamp, extension))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open debug file %q: %w", path, err)
	}
	return file, nil
}

// resolveStateDir returns XDG_STATE_HOME fallback path for debug artifacts.
func resolveStateDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for state: %w", err)
	}
	return filepath.Join(home, ".local", "state"), nil
}
