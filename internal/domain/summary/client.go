// Package summary produces one-sentence narrations for detected events by
// calling an external text-completion service under bounded concurrency.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patman77/NeuroNarrative/pkg/metrics"
)

// systemPrompt pins the completion service to grounded, single-sentence
// output with an explicit sentinel for unusable excerpts.
const systemPrompt = `You are a careful summarizer.
- Work ONLY with the provided transcript excerpt.
- Output 1 sentence, <= 20 words.
- Keep numbers and proper nouns exact.
- No speculation. No new facts.
- If excerpt is too short or unclear, output: NONE
Return JSON: {"summary": "<string or 'NONE'>"}
`

const (
	// minExcerptWords gates uninformative windows: shorter excerpts are
	// never sent to the service.
	minExcerptWords = 6

	// maxSummaryWords truncates the text fallback when the service does
	// not return the expected JSON.
	maxSummaryWords = 20

	defaultTimeout = 120 * time.Second
)

// Summarizer turns a transcript excerpt into an optional one-sentence
// summary. A nil result with nil error means "nothing worth saying".
type Summarizer interface {
	Summarize(ctx context.Context, text string) (*string, error)
}

// Client calls an ollama-style generate endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	model      string
}

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithTimeout bounds a single completion call.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a completion client for the given endpoint and model.
func NewClient(url, model string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		url:        url,
		model:      model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generateRequest is the wire payload for the completion endpoint.
type generateRequest struct {
	Model   string          `json:"model"`
	System  string          `json:"system"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Summarize sends one completion request for the excerpt. Excerpts shorter
// than minExcerptWords are never sent; the call is skipped and nil returned.
// A malformed inner JSON response is recovered locally via a text fallback;
// transport and HTTP failures propagate to the caller.
func (c *Client) Summarize(ctx context.Context, text string) (*string, error) {
	cleaned := strings.TrimSpace(text)
	if len(strings.Fields(cleaned)) < minExcerptWords {
		metrics.RecordSummarizerSkipped()
		return nil, nil
	}

	payload := generateRequest{
		Model:  c.model,
		System: systemPrompt,
		Prompt: "Transcript (timestamps removed):\n\"\"\"\n" + cleaned + "\n\"\"\"\n" +
			"Summarize as one short sentence (<= 20 words). If unclear or mostly fillers, output: NONE",
		Stream: false,
		Options: generateOptions{
			Temperature: 0.2,
			TopP:        0.9,
			NumPredict:  128,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %w", ErrSummarize, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummarize, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	metrics.RecordSummarizerCall()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordSummarizerError()
		return nil, fmt.Errorf("%w: %w", ErrSummarize, err)
	}
	defer resp.Body.Close()
	metrics.RecordSummarizerLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordSummarizerError()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %s: %s", ErrSummarize, resp.Status, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.RecordSummarizerError()
		return nil, fmt.Errorf("%w: decoding response: %w", ErrSummarize, err)
	}

	return parseSummary(strings.TrimSpace(out.Response)), nil
}

// parseSummary extracts the summary from the service's text output. The
// expected shape is {"summary": "..."}; anything else falls back to the
// first line of raw text, quote-stripped and truncated to maxSummaryWords.
func parseSummary(raw string) *string {
	var parsed struct {
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return parsed.Summary
	}

	if raw == "" {
		return nil
	}
	firstLine := strings.TrimSpace(strings.SplitN(raw, "\n", 2)[0])
	firstLine = strings.Trim(firstLine, `"`)
	words := strings.Fields(firstLine)
	if len(words) == 0 {
		return nil
	}
	if len(words) > maxSummaryWords {
		words = words[:maxSummaryWords]
	}
	s := strings.Join(words, " ")
	return &s
}
