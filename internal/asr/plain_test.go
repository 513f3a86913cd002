package asr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainTranscribeObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("RIFF-fake-wav"), data)
		require.Equal(t, "whisper-1", r.FormValue("model"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "set an alarm for 8 pm"}`))
	}))
	defer server.Close()

	client, err := NewPlain(Options{BaseURL: server.URL, APIKey: "secret", Model: "whisper-1"})
	require.NoError(t, err)

	text, err := client.Transcribe(context.Background(), []byte("RIFF-fake-wav"))
	require.NoError(t, err)
	require.Equal(t, "set an alarm for 8 pm", text)
}

func TestPlainTranscribeArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"text": "add a task buy milk"}, {"text": "ignored"}]`))
	}))
	defer server.Close()

	client, err := NewPlain(Options{BaseURL: server.URL})
	require.NoError(t, err)

	text, err := client.Transcribe(context.Background(), []byte("pcm"))
	require.NoError(t, err)
	require.Equal(t, "add a task buy milk", text)
}

func TestPlainTranscribeEmptyArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewPlain(Options{BaseURL: server.URL})
	require.NoError(t, err)

	text, err := client.Transcribe(context.Background(), []byte("pcm"))
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestPlainTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewPlain(Options{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Transcribe(context.Background(), []byte("pcm"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
	require.Contains(t, err.Error(), "model not loaded")
}

func TestPlainTranscribeMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer server.Close()

	client, err := NewPlain(Options{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Transcribe(context.Background(), []byte("pcm"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode transcription response")
}

func TestDecodeTranscriptShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{name: "object", payload: `{"text": "hello"}`, want: "hello"},
		{name: "object missing text", payload: `{"status": "ok"}`, want: ""},
		{name: "array", payload: `[{"text": "first"}, {"text": "second"}]`, want: "first"},
		{name: "array leading whitespace", payload: "\n  [{\"text\": \"padded\"}]", want: "padded"},
		{name: "empty array", payload: `[]`, want: ""},
		{name: "malformed array", payload: `[{"text": ]`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeTranscript([]byte(tc.payload))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNewBackendSelection(t *testing.T) {
	client, err := New(Options{Backend: "plain", BaseURL: "http://localhost:9000/transcribe"})
	require.NoError(t, err)
	require.IsType(t, &Plain{}, client)

	client, err = New(Options{Backend: "openai", BaseURL: "http://localhost:8000/v1"})
	require.NoError(t, err)
	require.IsType(t, &OpenAI{}, client)

	client, err = New(Options{BaseURL: "http://localhost:8000/v1"})
	require.NoError(t, err)
	require.IsType(t, &OpenAI{}, client)

	_, err = New(Options{Backend: "grpc"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown ASR backend")

	_, err = New(Options{Backend: "plain"})
	require.ErrorIs(t, err, ErrNoEndpoint)
}
