// Package indicator handles desktop notifications and audio cue playback.
package indicator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/voxboard/voxboard/internal/config"
)

// Controller is the session-facing indicator contract. It also covers the
// command outcome notifications, so one implementation serves both surfaces.
type Controller interface {
	ShowRecording(context.Context)
	ShowTranscribing(context.Context)
	ShowConfirm(context.Context, string)
	ShowError(context.Context, string)
	Success(context.Context, string)
	Error(context.Context, string)
	CueStop(context.Context)
	CueComplete(context.Context)
	CueCancel(context.Context)
	Hide(context.Context)
}

// DesktopNotify routes indicator output through freedesktop notifications.
type DesktopNotify struct {
	cfg      config.IndicatorConfig
	logger   *slog.Logger
	messages messages

	mu             sync.Mutex
	notificationID uint32
	soundMu        sync.Mutex
}

// NewDesktopNotify creates an indicator controller from config.
func NewDesktopNotify(cfg config.IndicatorConfig, logger *slog.Logger) *DesktopNotify {
	return &DesktopNotify{
		cfg:      cfg,
		logger:   logger,
		messages: indicatorMessagesFromEnv(),
	}
}

// ShowRecording signals recording start and emits the start cue.
func (d *DesktopNotify) ShowRecording(ctx context.Context) {
	d.playCue(cueStart)
	if !d.cfg.Enable {
		return
	}
	d.run(ctx, func(ctx context.Context) error {
		return d.notify(ctx, 300000, d.messages.recording)
	})
}

// ShowTranscribing signals the post-capture transcription state.
func (d *DesktopNotify) ShowTranscribing(ctx context.Context) {
	if !d.cfg.Enable {
		return
	}
	d.run(ctx, func(ctx context.Context) error {
		return d.notify(ctx, 300000, d.messages.transcribing)
	})
}

// ShowConfirm presents the staged transcript and asks for a decision. The
// notification stays up until the user confirms, rejects, or cancels.
func (d *DesktopNotify) ShowConfirm(ctx context.Context, transcript string) {
	if !d.cfg.Enable {
		return
	}
	text := fmt.Sprintf("%s %q %s", d.messages.heard, transcript, d.messages.confirmPrompt)
	d.run(ctx, func(ctx context.Context) error {
		return d.notify(ctx, 300000, text)
	})
}

// ShowError displays an error-state indicator message.
func (d *DesktopNotify) ShowError(ctx context.Context, text string) {
	if !d.cfg.Enable {
		return
	}
	if text == "" {
		text = d.messages.errorText
	}
	timeout := d.cfg.ErrorTimeoutMS
	if timeout <= 0 {
		timeout = 1200
	}
	d.run(ctx, func(ctx context.Context) error {
		return d.notify(ctx, timeout, text)
	})
}

// Success displays a short-lived command outcome notification.
func (d *DesktopNotify) Success(ctx context.Context, message string) {
	if !d.cfg.Enable {
		return
	}
	d.run(ctx, func(ctx context.Context) error {
		return d.notify(ctx, 2500, message)
	})
}

// Error displays a failed command outcome notification.
func (d *DesktopNotify) Error(ctx context.Context, message string) {
	d.ShowError(ctx, message)
}

// CueStop emits the stop cue.
func (d *DesktopNotify) CueStop(context.Context) {
	d.playCue(cueStop)
}

// CueComplete emits the command-applied cue.
func (d *DesktopNotify) CueComplete(context.Context) {
	d.playCue(cueComplete)
}

// CueCancel emits the cancel cue.
func (d *DesktopNotify) CueCancel(context.Context) {
	d.playCue(cueCancel)
}

// Hide dismisses the active notification.
func (d *DesktopNotify) Hide(ctx context.Context) {
	if !d.cfg.Enable {
		return
	}
	d.run(ctx, d.dismiss)
}

// notify sends a replaceable desktop notification and stores its ID so the
// next state update replaces the same surface instead of stacking.
func (d *DesktopNotify) notify(ctx context.Context, timeoutMS int, text string) error {
	d.mu.Lock()
	replaceID := d.notificationID
	d.mu.Unlock()

	appName := strings.TrimSpace(d.cfg.DesktopAppName)
	if appName == "" {
		appName = "voxboard"
	}

	id, err := desktopNotify(ctx, appName, replaceID, text, timeoutMS)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.notificationID = id
	d.mu.Unlock()
	return nil
}

// dismiss closes the current notification ID when present.
func (d *DesktopNotify) dismiss(ctx context.Context) error {
	d.mu.Lock()
	id := d.notificationID
	d.notificationID = 0
	d.mu.Unlock()

	if id == 0 {
		return nil
	}
	return desktopDismiss(ctx, id)
}

// run executes an indicator operation with a bounded timeout.
func (d *DesktopNotify) run(ctx context.Context, fn func(context.Context) error) {
	runCtx, cancel := context.WithTimeout(ctx, 400*time.Millisecond)
	defer cancel()
	if err := fn(runCtx); err != nil {
		d.log("indicator dispatch failed", err)
	}
}

// playCue serializes cue playback and emits audio asynchronously.
func (d *DesktopNotify) playCue(kind cueKind) {
	if !d.cfg.SoundEnable {
		return
	}
	go func() {
		d.soundMu.Lock()
		defer d.soundMu.Unlock()
		if err := emitCue(kind, d.cfg); err != nil {
			d.log("indicator audio cue failed", err)
		}
	}()
}

// log emits debug-only indicator failures to the runtime logger.
func (d *DesktopNotify) log(message string, err error) {
	if d.logger == nil || err == nil {
		return
	}
	d.logger.Debug(message, "error", err.Error())
}
