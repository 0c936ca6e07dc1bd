package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel           = "gemini-1.5-pro"
	defaultRequestInterval = 40 * time.Second
	defaultRetryCooldown   = 60 * time.Second
)

// Config holds the generation client settings.
type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	RequestInterval time.Duration // pacing pause after every successful call
	RetryCooldown   time.Duration // wait before the single transient retry
	Proxy           string
}

// Client issues prompts to a Gemini-style text generation endpoint with
// bounded resilience: at most one retry, only for transient server errors,
// and a fixed pacing pause after every successful call. A Client supports
// one in-flight call at a time; concurrent pipelines use separate clients.
type Client struct {
	BaseURL string
	Model   string

	apiKey          string
	client          *http.Client
	requestInterval time.Duration
	retryCooldown   time.Duration

	// sleep is swapped out by tests; waits are blocking on purpose and do
	// not observe cancellation, so a started cooldown runs to completion.
	sleep    func(time.Duration)
	lastCall time.Time
}

// NewClient validates the config and builds a Client, with optional proxy
// support.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generation API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = defaultRequestInterval
	}
	if cfg.RetryCooldown <= 0 {
		cfg.RetryCooldown = defaultRetryCooldown
	}

	transport := &http.Transport{}
	if cfg.Proxy != "" {
		if u, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Model:   cfg.Model,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   120 * time.Second,
			Transport: transport,
		},
		requestInterval: cfg.RequestInterval,
		retryCooldown:   cfg.RetryCooldown,
		sleep:           time.Sleep,
	}, nil
}

// Request/response shapes of the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the prompt and returns the generated text.
//
// A transient server failure (500 or 503) is retried exactly once after the
// retry cooldown; any other failure, or a second failure on retry, is
// terminal. After a successful call the client pauses for the request
// interval before parsing the payload, so back-to-back calls keep the
// minimum cadence the service expects.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log.Printf("[INFO] sending prompt to %s (%d bytes)", c.Model, len(prompt))
	resp, err := c.invoke(ctx, prompt)
	if err != nil && classify(err) == ClassTransient {
		log.Printf("[WARN] transient generation failure, retrying in %v: %v", c.retryCooldown, err)
		c.sleep(c.retryCooldown)
		resp, err = c.invoke(ctx, prompt)
		if err != nil {
			err = fmt.Errorf("retry failed: %w", err)
		}
	}
	if err != nil {
		class := classify(err)
		if class == ClassMalformed {
			// The HTTP call itself succeeded; keep the cadence anyway.
			c.pace()
		}
		log.Printf("[ERROR] generation failed: %v", err)
		return "", &GenerationError{Class: class, Err: err}
	}

	// Pace before touching the payload so the minimum spacing holds even
	// when the payload turns out to be unusable.
	c.pace()

	text, err := resp.text()
	if err != nil {
		log.Printf("[ERROR] generation payload unusable: %v", err)
		return "", &GenerationError{Class: ClassMalformed, Err: err}
	}
	log.Printf("[INFO] generated %d bytes", len(text))
	return text, nil
}

// pace observes the inter-call interval and stamps the call time.
func (c *Client) pace() {
	c.sleep(c.requestInterval)
	c.lastCall = time.Now()
}

// LastCall reports when the pacing pause of the most recent successful call
// elapsed.
func (c *Client) LastCall() time.Time { return c.lastCall }

func (c *Client) invoke(ctx context.Context, prompt string) (*generateResponse, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		var eb apiErrorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error.Message != "" {
			apiErr.Message = eb.Error.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &out, nil
}

// text flattens the first candidate's parts.
func (r *generateResponse) text() (string, error) {
	if len(r.Candidates) == 0 {
		return "", ErrMalformedPayload
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", ErrMalformedPayload
	}
	return b.String(), nil
}
