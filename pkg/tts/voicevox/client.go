package voicevox

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

const defaultBaseURL = "https://api.su-shiki.com"

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

// Client calls the hosted VOICEVOX synthesis API. Safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a VOICEVOX Client. apiKey must be non-empty.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("voicevox: apiKey must not be empty")
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
// bytes (WAV). The speaker is sent as its numeric style ID.
func (c *Client) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	query := url.Values{}
	query.Set("text", text)
	query.Set("key", c.apiKey)
	query.Set("speaker", strconv.Itoa(opts.Speaker.ID()))
	query.Set("pitch", strconv.FormatFloat(opts.Pitch, 'f', -1, 64))
	query.Set("intonationScale", strconv.FormatFloat(opts.IntonationScale, 'f', -1, 64))
	query.Set("speed", strconv.FormatFloat(opts.Speed, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/voicevox/audio?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("voicevox: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voicevox: synthesize: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("voicevox: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voicevox: synthesize: unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
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
