package voicetext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "https://api.voicetext.jp"

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// Client calls the VoiceText synthesis API. Safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a VoiceText Client. apiKey must be non-empty.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("voicetext: apiKey must not be empty")
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Synthesize sends text with the given options and returns the raw audio
// bytes in the container selected by opts.Format. The emotion parameters are
// sent only when an emotion is set.
func (c *Client) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("speaker", opts.Speaker.String())
	form.Set("format", opts.Format.String())
	form.Set("pitch", strconv.Itoa(opts.Pitch))
	form.Set("speed", strconv.Itoa(opts.Speed))
	form.Set("volume", strconv.Itoa(opts.Volume))
	if opts.Emotion != "" {
		form.Set("emotion", opts.Emotion.String())
		form.Set("emotion_level", strconv.Itoa(opts.EmotionLevel))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tts", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("voicetext: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voicetext: synthesize: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("voicetext: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voicetext: synthesize: unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

// truncate shortens an error body for inclusion in an error message.
func truncate(b []byte, n int) string {
	s := string(b)
	if len(s) > n {
		return s[:n] + "…"
	}
	return s
}
