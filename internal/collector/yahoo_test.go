package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newYahooTestFetcher(t *testing.T, body string) *YahooFetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	f := NewYahooFetcher("NSE", "")
	f.BaseURL = srv.URL
	return f
}

func TestYahooFetch_EmptyQuoteArrayIsError(t *testing.T) {
	body := `{"chart":{"result":[{"timestamp":[1700000000,1700086400],"indicators":{"quote":[]}}]}}`
	f := newYahooTestFetcher(t, body)

	if _, err := f.FetchDailyBars("TCS", 365); err == nil {
		t.Fatal("expected error when the payload carries timestamps but no quote data")
	}
}

func TestYahooFetch_ShortQuoteArraysTruncate(t *testing.T) {
	// Three timestamps but only two entries per quote array.
	body := `{"chart":{"result":[{"timestamp":[1700000000,1700086400,1700172800],
		"indicators":{"quote":[{"open":[10,11],"high":[12,13],"low":[9,10],"close":[11,12],"volume":[100,200]}]}}]}}`
	f := newYahooTestFetcher(t, body)

	bars, err := f.FetchDailyBars("TCS", 365)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected the common prefix of 2 bars, got %d", len(bars))
	}
	if bars[1].Close != 12 {
		t.Errorf("unexpected close %v", bars[1].Close)
	}
}
