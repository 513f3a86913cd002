// Package asr sends captured audio to a speech-to-text service and returns
// the recognized transcript.
package asr

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoEndpoint indicates no ASR endpoint has been configured.
var ErrNoEndpoint = errors.New("no ASR endpoint configured")

// Client recognizes speech from a complete WAV recording.
type Client interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// Options selects and configures an ASR backend.
type Options struct {
	// Backend is "openai" or "plain".
	Backend string
	BaseURL string
	APIKey  string
	Model   string
}

// New constructs the configured ASR backend.
func New(opts Options) (Client, error) {
	switch opts.Backend {
	case "", "openai":
		return NewOpenAI(opts)
	case "plain":
		return NewPlain(opts)
	default:
		return nil, fmt.Errorf("unknown ASR backend %q", opts.Backend)
	}
}
