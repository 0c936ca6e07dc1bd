package generator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const okBody = `{"candidates":[{"content":{"parts":[{"text":"analysis report"}]}}]}`

// scriptedServer replays the given status/body pairs in order and counts
// the requests it served.
type scriptedServer struct {
	*httptest.Server
	calls int
}

func newScriptedServer(t *testing.T, responses ...struct {
	status int
	body   string
}) *scriptedServer {
	t.Helper()
	s := &scriptedServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.calls >= len(responses) {
			t.Errorf("unexpected extra request %d", s.calls+1)
			w.WriteHeader(http.StatusTeapot)
			return
		}
		resp := responses[s.calls]
		s.calls++
		w.WriteHeader(resp.status)
		w.Write([]byte(resp.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func resp(status int, body string) struct {
	status int
	body   string
} {
	return struct {
		status int
		body   string
	}{status, body}
}

func newTestClient(t *testing.T, baseURL string) (*Client, *[]time.Duration) {
	t.Helper()
	c, err := NewClient(Config{
		APIKey:          "test-key",
		BaseURL:         baseURL,
		RequestInterval: 40 * time.Second,
		RetryCooldown:   60 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	var sleeps []time.Duration
	c.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return c, &sleeps
}

func TestGenerate_TransientRetriesOnce(t *testing.T) {
	srv := newScriptedServer(t,
		resp(http.StatusServiceUnavailable, `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`),
		resp(http.StatusOK, okBody),
	)
	c, sleeps := newTestClient(t, srv.URL)

	text, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "analysis report" {
		t.Errorf("unexpected text %q", text)
	}
	if srv.calls != 2 {
		t.Errorf("expected exactly one retry (2 calls), got %d calls", srv.calls)
	}
	// Cooldown observed before the retry, pacing pause after success.
	want := []time.Duration{60 * time.Second, 40 * time.Second}
	if len(*sleeps) != 2 || (*sleeps)[0] != want[0] || (*sleeps)[1] != want[1] {
		t.Errorf("expected sleeps %v, got %v", want, *sleeps)
	}
}

func TestGenerate_TransientRetryFailureIsTerminal(t *testing.T) {
	srv := newScriptedServer(t,
		resp(http.StatusInternalServerError, `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`),
		resp(http.StatusInternalServerError, `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`),
	)
	c, sleeps := newTestClient(t, srv.URL)

	_, err := c.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected terminal failure after failed retry")
	}
	if class, ok := Classify(err); !ok || class != ClassTransient {
		t.Errorf("expected transient class, got %v (classified=%v)", err, ok)
	}
	if srv.calls != 2 {
		t.Errorf("expected exactly 2 calls, got %d", srv.calls)
	}
	// Only the cooldown; no pacing pause on failure.
	if len(*sleeps) != 1 || (*sleeps)[0] != 60*time.Second {
		t.Errorf("expected only the cooldown sleep, got %v", *sleeps)
	}
}

func TestGenerate_PermanentNeverRetries(t *testing.T) {
	srv := newScriptedServer(t,
		resp(http.StatusNotFound, `{"error":{"code":404,"message":"model not found","status":"NOT_FOUND"}}`),
	)
	c, sleeps := newTestClient(t, srv.URL)

	_, err := c.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if class, ok := Classify(err); !ok || class != ClassPermanent {
		t.Errorf("expected permanent class, got %v", err)
	}
	if srv.calls != 1 {
		t.Errorf("expected zero retries, got %d calls", srv.calls)
	}
	if len(*sleeps) != 0 {
		t.Errorf("expected no sleeps, got %v", *sleeps)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected wrapped APIError with status 404, got %v", err)
	}
}

func TestGenerate_MalformedPayloadIsDistinctAndNotRetried(t *testing.T) {
	srv := newScriptedServer(t,
		resp(http.StatusOK, `{"candidates":[]}`),
	)
	c, sleeps := newTestClient(t, srv.URL)

	_, err := c.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
	if class, ok := Classify(err); !ok || class != ClassMalformed {
		t.Errorf("expected malformed class, got %v", err)
	}
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload in chain, got %v", err)
	}
	if srv.calls != 1 {
		t.Errorf("malformed payloads must never retry, got %d calls", srv.calls)
	}
	// The pacing pause still ran: the HTTP call itself succeeded.
	if len(*sleeps) != 1 || (*sleeps)[0] != 40*time.Second {
		t.Errorf("expected the pacing sleep, got %v", *sleeps)
	}
}

func TestGenerate_UndecodableSuccessBodyIsMalformedAndPaced(t *testing.T) {
	srv := newScriptedServer(t,
		resp(http.StatusOK, `not json`),
	)
	c, sleeps := newTestClient(t, srv.URL)

	_, err := c.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for an undecodable success body")
	}
	if class, ok := Classify(err); !ok || class != ClassMalformed {
		t.Errorf("expected malformed class, got %v", err)
	}
	if srv.calls != 1 {
		t.Errorf("malformed payloads must never retry, got %d calls", srv.calls)
	}
	// The HTTP call succeeded, so the pacing pause applies here too.
	if len(*sleeps) != 1 || (*sleeps)[0] != 40*time.Second {
		t.Errorf("expected the pacing sleep, got %v", *sleeps)
	}
}

func TestGenerate_ConsecutiveCallsKeepSpacing(t *testing.T) {
	srv := newScriptedServer(t,
		resp(http.StatusOK, okBody),
		resp(http.StatusOK, okBody),
	)
	c, sleeps := newTestClient(t, srv.URL)

	for i := 0; i < 2; i++ {
		if _, err := c.Generate(context.Background(), "prompt"); err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
	}
	// Every success pauses for the full interval before returning, so two
	// calls through the same client are spaced by at least one interval.
	if len(*sleeps) != 2 {
		t.Fatalf("expected 2 pacing sleeps, got %v", *sleeps)
	}
	for _, d := range *sleeps {
		if d < 40*time.Second {
			t.Errorf("pacing sleep %v shorter than the configured interval", d)
		}
	}
	if c.LastCall().IsZero() {
		t.Error("expected last-call timestamp to be recorded")
	}
}
