// Package speech streams synthesized audio from the voice provider.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// minBufferedChunks is the jitter-masking hold-back: playback only
	// begins once this many chunks are queued or the stream has ended.
	minBufferedChunks = 5

	chunkSize       = 32 * 1024
	sessionCapacity = 64
)

type Client struct {
	Endpoint string
	APIKey   string
	VoiceID  string
	HTTP     *http.Client
}

func NewClient(endpoint, apiKey, voiceID string) *Client {
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		VoiceID:  voiceID,
		HTTP:     &http.Client{Timeout: 2 * time.Minute},
	}
}

type synthesisRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings map[string]any `json:"voice_settings"`
}

// Stream opens one streaming synthesis call and returns the session
// owning it. The caller drains Chunks and must Cancel when done.
func (c *Client) Stream(ctx context.Context, text string) (*Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is required")
	}
	if c.APIKey == "" {
		return nil, errors.New("speech API key not configured")
	}

	payload, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2",
		VoiceSettings: map[string]any{
			"stability":        0.5,
			"similarity_boost": 0.8,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/stream", c.Endpoint, c.VoiceID)
	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("speech synthesis: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	session := newSession(ctx, cancel, resp.Body)
	go session.read()
	return session, nil
}
