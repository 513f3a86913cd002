// Package session coordinates the voice capture lifecycle, actions, and
// confirmation flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/voxboard/voxboard/internal/fsm"
	"github.com/voxboard/voxboard/internal/ipc"
	"github.com/voxboard/voxboard/internal/transcript"
)

type action int

const (
	actionStop action = iota + 1
	actionCancel
	actionConfirm
	actionReject
)

// Result is the complete lifecycle output returned by one Run invocation.
type Result struct {
	State         fsm.State
	Transcript    string
	Cancelled     bool
	Rejected      bool
	Processed     bool
	Outcome       ProcessResult
	Err           error
	AudioDevice   string
	BytesCaptured int64
	ASRLatency    time.Duration
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Indicator is the session-facing subset of indicator behavior.
type Indicator interface {
	ShowRecording(context.Context)
	ShowTranscribing(context.Context)
	ShowConfirm(context.Context, string)
	ShowError(context.Context, string)
	CueStop(context.Context)
	CueComplete(context.Context)
	CueCancel(context.Context)
	Hide(context.Context)
}

// noopIndicator preserves session flow when no indicator is wired.
type noopIndicator struct{}

func (noopIndicator) ShowRecording(context.Context)       {}
func (noopIndicator) ShowTranscribing(context.Context)    {}
func (noopIndicator) ShowConfirm(context.Context, string) {}
func (noopIndicator) ShowError(context.Context, string)   {}
func (noopIndicator) CueStop(context.Context)             {}
func (noopIndicator) CueComplete(context.Context)         {}
func (noopIndicator) CueCancel(context.Context)           {}
func (noopIndicator) Hide(context.Context)                {}

// Controller orchestrates session state transitions and side effects.
type Controller struct {
	logger     *slog.Logger
	transcribe Transcriber
	process    Processor
	indicator  Indicator

	mu     sync.RWMutex
	state  fsm.State
	staged string

	actions chan action
}

// NewController constructs a session controller with safe default fallbacks.
func NewController(
	logger *slog.Logger,
	transcriber Transcriber,
	processor Processor,
	indicator Indicator,
) *Controller {
	if transcriber == nil {
		transcriber = PlaceholderTranscriber{}
	}
	if processor == nil {
		processor = ProcessFunc(func(context.Context, string) ProcessResult {
			return ProcessResult{OK: true}
		})
	}
	if indicator == nil {
		indicator = noopIndicator{}
	}

	return &Controller{
		logger:     logger,
		transcribe: transcriber,
		process:    processor,
		indicator:  indicator,
		state:      fsm.StateIdle,
		actions:    make(chan action, 1),
	}
}

// State returns the current FSM state snapshot.
func (c *Controller) State() fsm.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Staged returns the normalized transcript awaiting confirmation, if any.
func (c *Controller) Staged() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.staged
}

func (c *Controller) setStaged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = text
}

// transition applies one FSM event to the controller state.
func (c *Controller) transition(event fsm.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fsm.Transition(c.state, event)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Run executes one owner lifecycle from start through stop, confirmation,
// and processing, or cancel/failure completion.
func (c *Controller) Run(ctx context.Context) Result {
	result := Result{StartedAt: time.Now()}
	defer func() { c.setStaged("") }()

	if err := c.transition(fsm.EventStart); err != nil {
		return c.finish(result, err)
	}

	c.indicator.ShowRecording(ctx)

	if err := c.transcribe.Start(ctx); err != nil {
		c.indicator.ShowError(ctx, "Unable to start recording")
		c.toErrorAndReset()
		return c.finish(result, err)
	}

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 800*time.Millisecond)
		defer cancel()
		c.indicator.Hide(cleanupCtx)
	}()

	select {
	case <-ctx.Done():
		_ = c.transcribe.Cancel(context.Background())
		c.indicator.CueCancel(context.Background())
		c.indicator.ShowError(context.Background(), "Cancelled")
		c.toErrorAndReset()
		return c.finish(result, ctx.Err())
	case a := <-c.actions:
		switch a {
		case actionCancel:
			_ = c.transcribe.Cancel(context.Background())
			c.indicator.CueCancel(context.Background())
			_ = c.transition(fsm.EventCancel)
			result.Cancelled = true
			return c.finish(result, nil)
		case actionStop:
			return c.runStop(ctx, result)
		default:
			c.toErrorAndReset()
			return c.finish(result, fmt.Errorf("unknown action %d", a))
		}
	}
}

// runStop continues the lifecycle once a stop has been requested.
func (c *Controller) runStop(ctx context.Context, result Result) Result {
	if err := c.transition(fsm.EventStop); err != nil {
		c.toErrorAndReset()
		return c.finish(result, err)
	}
	c.indicator.ShowTranscribing(ctx)

	stopResult, err := c.transcribe.StopAndTranscribe(ctx)
	c.indicator.CueStop(context.Background())
	result.AudioDevice = stopResult.AudioDevice
	result.BytesCaptured = stopResult.BytesCaptured
	result.ASRLatency = stopResult.ASRLatency
	if err != nil {
		if errors.Is(err, ErrMicrophoneAccess) {
			c.indicator.ShowError(context.Background(), "Microphone access failed")
		} else {
			c.indicator.ShowError(context.Background(), "Speech recognition failed")
		}
		c.toErrorAndReset()
		return c.finish(result, err)
	}

	staged := transcript.Normalize(stopResult.Transcript)
	result.Transcript = staged
	if strings.TrimSpace(staged) == "" {
		c.indicator.ShowError(context.Background(), "No speech detected")
		c.toErrorAndReset()
		return c.finish(result, ErrEmptyTranscript)
	}

	if err := c.transition(fsm.EventTranscribed); err != nil {
		c.toErrorAndReset()
		return c.finish(result, err)
	}
	c.setStaged(staged)
	c.indicator.ShowConfirm(ctx, staged)

	select {
	case <-ctx.Done():
		c.indicator.CueCancel(context.Background())
		c.toErrorAndReset()
		return c.finish(result, ctx.Err())
	case a := <-c.actions:
		switch a {
		case actionConfirm:
			return c.runProcess(ctx, result, staged)
		case actionReject:
			c.indicator.CueCancel(context.Background())
			_ = c.transition(fsm.EventReject)
			result.Rejected = true
			return c.finish(result, nil)
		case actionCancel:
			c.indicator.CueCancel(context.Background())
			_ = c.transition(fsm.EventCancel)
			result.Cancelled = true
			return c.finish(result, nil)
		default:
			c.toErrorAndReset()
			return c.finish(result, fmt.Errorf("unknown action %d", a))
		}
	}
}

// runProcess applies the confirmed transcript. Processing always runs to
// completion; a failed command surfaces as a non-OK outcome, not an error.
func (c *Controller) runProcess(ctx context.Context, result Result, staged string) Result {
	if err := c.transition(fsm.EventConfirm); err != nil {
		c.toErrorAndReset()
		return c.finish(result, err)
	}

	outcome := c.process.Process(ctx, staged)
	result.Processed = true
	result.Outcome = outcome
	if outcome.OK {
		c.indicator.CueComplete(context.Background())
	}

	if err := c.transition(fsm.EventProcessed); err != nil {
		return c.finish(result, err)
	}
	return c.finish(result, nil)
}

func (c *Controller) finish(result Result, err error) Result {
	result.State = c.State()
	result.Err = err
	result.FinishedAt = time.Now()
	return result
}

// Handle serves IPC commands for the active owner session.
func (c *Controller) Handle(_ context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case "status":
		return ipc.Response{OK: true, State: string(c.State()), Message: "status", Text: c.Staged()}
	case "toggle":
		return c.requestStop("toggle")
	case "stop":
		return c.requestStop("stop")
	case "cancel":
		return c.requestCancel()
	case "confirm":
		return c.requestDecision(actionConfirm, "confirm")
	case "reject":
		return c.requestDecision(actionReject, "reject")
	default:
		return ipc.Response{OK: false, State: string(c.State()), Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

// requestStop enqueues a stop action when state permits it.
func (c *Controller) requestStop(source string) ipc.Response {
	state := c.State()
	if state == fsm.StateTranscribing {
		return ipc.Response{OK: false, State: string(state), Error: "already transcribing"}
	}
	if state != fsm.StateRecording {
		return ipc.Response{OK: false, State: string(state), Error: fmt.Sprintf("cannot %s from state %s", source, state)}
	}

	select {
	case c.actions <- actionStop:
		return ipc.Response{OK: true, State: string(state), Message: "stop requested"}
	default:
		return ipc.Response{OK: true, State: string(state), Message: "stop already requested"}
	}
}

// requestCancel enqueues a cancel action. Cancel is only valid while
// recording or awaiting confirmation.
func (c *Controller) requestCancel() ipc.Response {
	state := c.State()
	if state != fsm.StateRecording && state != fsm.StateConfirming {
		return ipc.Response{OK: false, State: string(state), Error: fmt.Sprintf("cannot cancel from state %s", state)}
	}

	select {
	case c.actions <- actionCancel:
		return ipc.Response{OK: true, State: string(state), Message: "cancel requested"}
	default:
		return ipc.Response{OK: true, State: string(state), Message: "cancel already requested"}
	}
}

// requestDecision enqueues a confirm or reject while awaiting confirmation.
func (c *Controller) requestDecision(a action, name string) ipc.Response {
	state := c.State()
	if state != fsm.StateConfirming {
		return ipc.Response{OK: false, State: string(state), Error: fmt.Sprintf("cannot %s from state %s", name, state)}
	}

	select {
	case c.actions <- a:
		return ipc.Response{OK: true, State: string(state), Message: name + " requested"}
	default:
		return ipc.Response{OK: true, State: string(state), Message: name + " already requested"}
	}
}

// toErrorAndReset transitions to error and back to idle best-effort.
func (c *Controller) toErrorAndReset() {
	_ = c.transition(fsm.EventFail)
	_ = c.transition(fsm.EventReset)
}

// IsPipelineUnavailable reports whether an error represents missing pipeline wiring.
func IsPipelineUnavailable(err error) bool {
	return errors.Is(err, ErrPipelineUnavailable)
}
