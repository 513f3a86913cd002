// Package command orchestrates classify -> extract -> apply for one
// transcript and converts every failure into a user-facing outcome.
package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/voxboard/voxboard/internal/apply"
	"github.com/voxboard/voxboard/internal/extract"
	"github.com/voxboard/voxboard/internal/intent"
	"github.com/voxboard/voxboard/internal/transcript"
)

// Notifier is the user feedback channel. Every processed command emits
// exactly one short success or error message.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// NotifierFunc pair adapts plain functions to the Notifier interface.
type NotifierFunc struct {
	OnSuccess func(ctx context.Context, message string)
	OnError   func(ctx context.Context, message string)
}

func (n NotifierFunc) Success(ctx context.Context, message string) {
	if n.OnSuccess != nil {
		n.OnSuccess(ctx, message)
	}
}

func (n NotifierFunc) Error(ctx context.Context, message string) {
	if n.OnError != nil {
		n.OnError(ctx, message)
	}
}

// Result is the terminal outcome of processing one transcript.
type Result struct {
	OK       bool
	Intent   intent.Intent
	WidgetID string
	Message  string
}

// Processor runs the voice-command pipeline against the injected applier.
type Processor struct {
	logger   *slog.Logger
	applier  *apply.Applier
	notifier Notifier
}

// NewProcessor constructs a processor with safe default fallbacks.
func NewProcessor(logger *slog.Logger, applier *apply.Applier, notifier Notifier) *Processor {
	if notifier == nil {
		notifier = NotifierFunc{}
	}
	return &Processor{logger: logger, applier: applier, notifier: notifier}
}

// Process classifies, extracts, and applies one transcript. All failures are
// reported through the notifier and returned as a non-OK Result; Process
// never panics or propagates errors to the session.
func (p *Processor) Process(ctx context.Context, text string) Result {
	normalized := transcript.Normalize(text)

	matched, ok := intent.Classify(normalized)
	if !ok {
		p.logWarn("command not recognized", "transcript", normalized)
		return p.fail(ctx, "", "Sorry, I didn't recognize that command")
	}

	payload, err := extract.ForIntent(matched, normalized)
	if err != nil {
		p.logWarn("extraction failed", "intent", string(matched), "error", err.Error())
		return p.fail(ctx, matched, messageForError(err))
	}

	outcome, err := p.applier.Apply(payload)
	if err != nil {
		p.logWarn("state application failed", "intent", string(matched), "error", err.Error())
		return p.fail(ctx, matched, "Could not update the widget, please try again")
	}

	if p.logger != nil {
		p.logger.Info("command applied",
			"intent", string(matched),
			"widget_id", outcome.WidgetID,
		)
	}
	p.notifier.Success(ctx, outcome.Message)
	return Result{OK: true, Intent: matched, WidgetID: outcome.WidgetID, Message: outcome.Message}
}

func (p *Processor) fail(ctx context.Context, matched intent.Intent, message string) Result {
	p.notifier.Error(ctx, message)
	return Result{OK: false, Intent: matched, Message: message}
}

func (p *Processor) logWarn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

// messageForError maps extraction failures onto short, actionable messages.
// Date failures get a distinct message from structural reminder failures.
func messageForError(err error) string {
	var extractErr *extract.Error
	if !errors.As(err, &extractErr) {
		return "Sorry, I couldn't process that command"
	}

	switch extractErr.Reason {
	case extract.ReasonNoTime:
		return "Could not understand the time format"
	case extract.ReasonBadHour:
		return "Please specify a valid hour"
	case extract.ReasonBadMinute:
		return "Please specify valid minutes"
	case extract.ReasonEmptyText:
		return "Could not understand what to add, please rephrase"
	case extract.ReasonNoConnector:
		return "Please phrase reminders as: add a reminder <text> on <date>"
	case extract.ReasonBadDate:
		return "Could not understand the date, try a different format (e.g. December 25)"
	case extract.ReasonMissingAmount:
		return "Could not understand the expense amount"
	case extract.ReasonMissingCategory:
		return "Please name a category, e.g. expense of 20 under groceries"
	default:
		return "Sorry, I couldn't process that command"
	}
}
