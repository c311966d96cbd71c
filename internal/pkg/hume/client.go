// Package hume is a client for the Hume TTS API: synthesis of narration
// audio from either a registered voice id or a free-text voice description,
// plus registration and deletion of persistent named voices.
package hume

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.hume.ai/v0"

// Config Hume client configuration
type Config struct {
	BaseURL string // API base, default: https://api.hume.ai/v0
	// SynthesisTimeout bounds a single synthesis call. Narrating a full
	// story runs for minutes, so this is far above normal HTTP timeouts.
	SynthesisTimeout time.Duration
}

// Client Hume TTS client. The API key is per user and passed on every call.
type Client struct {
	baseURL     string
	httpClient  *http.Client // voice registry calls
	synthClient *http.Client // long-running synthesis calls
}

// NewClient creates a Hume client
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	synthesisTimeout := cfg.SynthesisTimeout
	if synthesisTimeout == 0 {
		synthesisTimeout = 5 * time.Minute
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		synthClient: &http.Client{
			Timeout: synthesisTimeout,
		},
	}
}

// Voice reference to a registered persistent voice
type Voice struct {
	ID string `json:"id"`
}

// Utterance one piece of text to synthesize. Exactly one of Voice or
// Description selects the narration voice.
type Utterance struct {
	Text        string `json:"text"`
	Voice       *Voice `json:"voice,omitempty"`
	Description string `json:"description,omitempty"`
}

// Synthesis result of a synthesis call
type Synthesis struct {
	GenerationID string  // provider id of this generation
	Audio        []byte  // decoded audio payload (wav)
	Duration     float64 // seconds
}

type synthesizeRequest struct {
	Utterances []Utterance `json:"utterances"`
}

type synthesizeResponse struct {
	Generations []struct {
		GenerationID string  `json:"generation_id"`
		Audio        string  `json:"audio"` // base64
		Duration     float64 `json:"duration"`
	} `json:"generations"`
}

// Synthesize generates audio for the given utterances
func (c *Client) Synthesize(ctx context.Context, apiKey string, utterances []Utterance) (*Synthesis, error) {
	body, err := json.Marshal(synthesizeRequest{Utterances: utterances})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	respBody, err := c.do(ctx, c.synthClient, apiKey, http.MethodPost, "/tts", body)
	if err != nil {
		return nil, err
	}

	var resp synthesizeResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode synthesis response: %w", err)
	}

	if len(resp.Generations) == 0 {
		return nil, fmt.Errorf("synthesis response contained no generations")
	}

	gen := resp.Generations[0]
	audio, err := base64.StdEncoding.DecodeString(gen.Audio)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}

	return &Synthesis{
		GenerationID: gen.GenerationID,
		Audio:        audio,
		Duration:     gen.Duration,
	}, nil
}

type createVoiceRequest struct {
	Name         string `json:"name"`
	GenerationID string `json:"generation_id"`
}

// CreateVoice registers a generation as a persistent named voice.
// The provider enforces name uniqueness; conflicts surface as an *APIError
// for which IsDuplicateName is true.
func (c *Client) CreateVoice(ctx context.Context, apiKey, name, generationID string) error {
	body, err := json.Marshal(createVoiceRequest{Name: name, GenerationID: generationID})
	if err != nil {
		return fmt.Errorf("failed to marshal create voice request: %w", err)
	}

	_, err = c.do(ctx, c.httpClient, apiKey, http.MethodPost, "/tts/voices", body)
	return err
}

// DeleteVoice removes a persistent voice from the provider
func (c *Client) DeleteVoice(ctx context.Context, apiKey, voiceID string) error {
	path := fmt.Sprintf("/tts/voices?id=%s", voiceID)
	_, err := c.do(ctx, c.httpClient, apiKey, http.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, client *http.Client, apiKey, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Hume-Api-Key", apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}
