package asr

import (
	"bytes"
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI recognizes speech through an OpenAI-compatible transcription API.
// Self-hosted servers such as speaches or faster-whisper-server expose the
// same surface, so BaseURL may point anywhere.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI constructs the OpenAI-compatible backend.
func NewOpenAI(opts Options) (*OpenAI, error) {
	if opts.BaseURL == "" && opts.APIKey == "" {
		return nil, ErrNoEndpoint
	}

	reqOpts := []option.RequestOption{}
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := opts.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}

	return &OpenAI{client: openai.NewClient(reqOpts...), model: model}, nil
}

// Transcribe implements Client.
func (o *OpenAI) Transcribe(ctx context.Context, wav []byte) (string, error) {
	resp, err := o.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(o.model),
		File:  openai.File(bytes.NewReader(wav), "capture.wav", "audio/wav"),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	return resp.Text, nil
}
