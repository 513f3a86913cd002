package session

import "context"

// ProcessResult is the processor outcome surfaced through the session result.
type ProcessResult struct {
	OK       bool
	WidgetID string
	Message  string
}

// Processor turns a confirmed transcript into widget state changes.
type Processor interface {
	Process(ctx context.Context, text string) ProcessResult
}

// ProcessFunc adapts a function to the Processor interface.
type ProcessFunc func(context.Context, string) ProcessResult

func (f ProcessFunc) Process(ctx context.Context, text string) ProcessResult {
	return f(ctx, text)
}
