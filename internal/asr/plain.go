package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Plain recognizes speech through a bare HTTP transcription endpoint. It
// posts the WAV as multipart form data and accepts either a single result
// object or an array of result objects in the response.
type Plain struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
}

// NewPlain constructs the plain HTTP backend.
func NewPlain(opts Options) (*Plain, error) {
	if opts.BaseURL == "" {
		return nil, ErrNoEndpoint
	}
	return &Plain{
		httpClient: http.DefaultClient,
		url:        strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		model:      opts.Model,
	}, nil
}

// Transcribe implements Client.
func (p *Plain) Transcribe(ctx context.Context, wav []byte) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", "capture.wav")
	if err != nil {
		return "", fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return "", fmt.Errorf("write audio to form: %w", err)
	}
	if p.model != "" {
		if err := form.WriteField("model", p.model); err != nil {
			return "", fmt.Errorf("write model field: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &body)
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return decodeTranscript(payload)
}

// decodeTranscript accepts {"text": ...} or [{"text": ...}, ...], taking the
// first element's text in the array shape.
func decodeTranscript(payload []byte) (string, error) {
	type result struct {
		Text string `json:"text"`
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var results []result
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return "", fmt.Errorf("decode transcription response: %w", err)
		}
		if len(results) == 0 {
			return "", nil
		}
		return results[0].Text, nil
	}

	var single result
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	return single.Text, nil
}
